package docker

import (
	"github.com/zoobzio/normalize"
)

// Plugin is an installed engine plugin.
type Plugin struct {
	normalize.Object

	ID              normalize.Field[string]          `wire:"Id"`
	Name            normalize.Field[string]          `wire:"Name"`
	Enabled         normalize.Field[bool]            `wire:"Enabled"`
	Settings        normalize.Field[*PluginSettings] `wire:"Settings"`
	PluginReference normalize.Field[string]          `wire:"PluginReference"`
	Config          normalize.Field[any]             `wire:"Config"`
}

// PluginSettings are the user-adjustable plugin settings.
type PluginSettings struct {
	normalize.Object

	Mounts  normalize.Field[[]PluginMount] `wire:"Mounts"`
	Env     normalize.Field[[]string]      `wire:"Env"`
	Args    normalize.Field[[]string]      `wire:"Args"`
	Devices normalize.Field[[]any]         `wire:"Devices"`
}

// PluginMount is a mount a plugin requests.
type PluginMount struct {
	normalize.Object

	Name        normalize.Field[string]   `wire:"Name"`
	Description normalize.Field[string]   `wire:"Description"`
	Settable    normalize.Field[[]string] `wire:"Settable"`
	Source      normalize.Field[string]   `wire:"Source"`
	Destination normalize.Field[string]   `wire:"Destination"`
	Type        normalize.Field[string]   `wire:"Type"`
	Options     normalize.Field[[]string] `wire:"Options"`
}

// AuthConfig carries registry credentials. Credential fields are masked
// when encoding with normalize.WithRedaction.
type AuthConfig struct {
	normalize.Object

	Username      normalize.Field[string] `wire:"username"`
	Password      normalize.Field[string] `wire:"password,secret"`
	Email         normalize.Field[string] `wire:"email"`
	ServerAddress normalize.Field[string] `wire:"serveraddress"`
	IdentityToken normalize.Field[string] `wire:"identitytoken,secret"`
	RegistryToken normalize.Field[string] `wire:"registrytoken,secret"`
}

// SystemVersion is the body of GET /version.
type SystemVersion struct {
	normalize.Object

	Platform      normalize.Field[map[string]any] `wire:"Platform"`
	Components    normalize.Field[[]any]          `wire:"Components"`
	Version       normalize.Field[string]         `wire:"Version"`
	APIVersion    normalize.Field[string]         `wire:"ApiVersion"`
	MinAPIVersion normalize.Field[string]         `wire:"MinAPIVersion"`
	GitCommit     normalize.Field[string]         `wire:"GitCommit"`
	GoVersion     normalize.Field[string]         `wire:"GoVersion"`
	Os            normalize.Field[string]         `wire:"Os"`
	Arch          normalize.Field[string]         `wire:"Arch"`
	KernelVersion normalize.Field[string]         `wire:"KernelVersion"`
	Experimental  normalize.Field[bool]           `wire:"Experimental"`
	BuildTime     normalize.Field[string]         `wire:"BuildTime"`
}

// ErrorResponse is the body of every engine error reply.
type ErrorResponse struct {
	normalize.Object

	Message normalize.Field[string] `wire:"message"`
}

// IDResponse is returned by endpoints that create an object.
type IDResponse struct {
	normalize.Object

	ID normalize.Field[string] `wire:"Id"`
}
