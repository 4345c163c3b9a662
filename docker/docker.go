// Package docker declares the Docker Engine API models and registers them
// with a normalize registry.
//
// Every model embeds normalize.Object so a nested slot can carry an
// unresolved $ref, and every attribute is a normalize.Field so partial
// bodies (ContainerUpdate, for one) keep the difference between absent and
// null.
package docker

import (
	"time"

	"github.com/samber/lo"

	"github.com/zoobzio/normalize"
)

// Type identifiers, named after the Engine API definitions.
const (
	TypeTime normalize.TypeID = "Time"

	TypeContainerSummary  normalize.TypeID = "ContainerSummary"
	TypePort              normalize.TypeID = "Port"
	TypeContainer         normalize.TypeID = "ContainerInspectResponse"
	TypeContainerState    normalize.TypeID = "ContainerState"
	TypeHealth            normalize.TypeID = "Health"
	TypeHealthcheckResult normalize.TypeID = "HealthcheckResult"
	TypeContainerConfig   normalize.TypeID = "ContainerConfig"
	TypeHealthConfig      normalize.TypeID = "HealthConfig"
	TypeHostConfig        normalize.TypeID = "HostConfig"
	TypeLogConfig         normalize.TypeID = "LogConfig"
	TypeRestartPolicy     normalize.TypeID = "RestartPolicy"
	TypePortBinding       normalize.TypeID = "PortBinding"
	TypeMount             normalize.TypeID = "Mount"
	TypeMountPoint        normalize.TypeID = "MountPoint"
	TypeContainerUpdate   normalize.TypeID = "ContainerUpdate"
	TypeContainerCreate   normalize.TypeID = "ContainerCreateResponse"

	TypeNetworkSettings  normalize.TypeID = "NetworkSettings"
	TypeEndpointSettings normalize.TypeID = "EndpointSettings"
	TypeNetwork          normalize.TypeID = "Network"
	TypeNetworkContainer normalize.TypeID = "NetworkContainer"
	TypeIPAM             normalize.TypeID = "IPAM"
	TypeIPAMConfig       normalize.TypeID = "IPAMConfig"

	TypeVolume          normalize.TypeID = "Volume"
	TypeVolumeUsageData normalize.TypeID = "VolumeUsageData"
	TypeImageSummary    normalize.TypeID = "ImageSummary"

	TypeService                 normalize.TypeID = "Service"
	TypeObjectVersion           normalize.TypeID = "ObjectVersion"
	TypeServiceSpec             normalize.TypeID = "ServiceSpec"
	TypeServiceMode             normalize.TypeID = "ServiceMode"
	TypeReplicatedService       normalize.TypeID = "ReplicatedService"
	TypeTaskSpec                normalize.TypeID = "TaskSpec"
	TypeContainerSpec           normalize.TypeID = "ContainerSpec"
	TypeNetworkAttachmentConfig normalize.TypeID = "NetworkAttachmentConfig"
	TypeTask                    normalize.TypeID = "Task"
	TypeTaskStatus              normalize.TypeID = "TaskStatus"
	TypeContainerStatus         normalize.TypeID = "ContainerStatus"
	TypeNetworkAttachment       normalize.TypeID = "NetworkAttachment"
	TypeSwarmNetwork            normalize.TypeID = "SwarmNetwork"
	TypeNetworkSpec             normalize.TypeID = "NetworkSpec"
	TypeNode                    normalize.TypeID = "Node"
	TypeNodeSpec                normalize.TypeID = "NodeSpec"
	TypeNodeDescription         normalize.TypeID = "NodeDescription"
	TypePlatform                normalize.TypeID = "Platform"
	TypeResourceObject          normalize.TypeID = "ResourceObject"
	TypeEngineDescription       normalize.TypeID = "EngineDescription"
	TypeNodeStatus              normalize.TypeID = "NodeStatus"
	TypeManagerStatus           normalize.TypeID = "ManagerStatus"

	TypePlugin         normalize.TypeID = "Plugin"
	TypePluginSettings normalize.TypeID = "PluginSettings"
	TypePluginMount    normalize.TypeID = "PluginMount"

	TypeAuthConfig    normalize.TypeID = "AuthConfig"
	TypeSystemVersion normalize.TypeID = "SystemVersion"
	TypeErrorResponse normalize.TypeID = "ErrorResponse"
	TypeIDResponse    normalize.TypeID = "IDResponse"
)

// Entries returns the registrations for every Docker model.
func Entries() []normalize.Entry {
	return []normalize.Entry{
		timeEntry(),

		normalize.Model[ContainerSummary](TypeContainerSummary),
		normalize.Model[Port](TypePort),
		normalize.Model[Container](TypeContainer),
		normalize.Model[ContainerState](TypeContainerState),
		normalize.Model[Health](TypeHealth),
		normalize.Model[HealthcheckResult](TypeHealthcheckResult),
		normalize.Model[ContainerConfig](TypeContainerConfig),
		normalize.Model[HealthConfig](TypeHealthConfig),
		normalize.Model[HostConfig](TypeHostConfig),
		normalize.Model[LogConfig](TypeLogConfig),
		normalize.Model[RestartPolicy](TypeRestartPolicy),
		normalize.Model[PortBinding](TypePortBinding),
		normalize.Model[Mount](TypeMount),
		normalize.Model[MountPoint](TypeMountPoint),
		normalize.Model[ContainerUpdate](TypeContainerUpdate),
		normalize.Model[ContainerCreateResponse](TypeContainerCreate),

		normalize.Model[NetworkSettings](TypeNetworkSettings),
		normalize.Model[EndpointSettings](TypeEndpointSettings),
		normalize.Model[Network](TypeNetwork),
		normalize.Model[NetworkContainer](TypeNetworkContainer),
		normalize.Model[IPAM](TypeIPAM),
		normalize.Model[IPAMConfig](TypeIPAMConfig),

		normalize.Model[Volume](TypeVolume),
		normalize.Model[VolumeUsageData](TypeVolumeUsageData),
		normalize.Model[ImageSummary](TypeImageSummary),

		normalize.Model[Service](TypeService),
		normalize.Model[ObjectVersion](TypeObjectVersion),
		normalize.Model[ServiceSpec](TypeServiceSpec),
		normalize.Model[ServiceMode](TypeServiceMode),
		normalize.Model[ReplicatedService](TypeReplicatedService),
		normalize.Model[TaskSpec](TypeTaskSpec),
		normalize.Model[ContainerSpec](TypeContainerSpec),
		normalize.Model[NetworkAttachmentConfig](TypeNetworkAttachmentConfig),
		normalize.Model[Task](TypeTask),
		normalize.Model[TaskStatus](TypeTaskStatus),
		normalize.Model[ContainerStatus](TypeContainerStatus),
		normalize.Model[NetworkAttachment](TypeNetworkAttachment),
		normalize.Model[SwarmNetwork](TypeSwarmNetwork),
		normalize.Model[NetworkSpec](TypeNetworkSpec),
		normalize.Model[Node](TypeNode),
		normalize.Model[NodeSpec](TypeNodeSpec),
		normalize.Model[NodeDescription](TypeNodeDescription),
		normalize.Model[Platform](TypePlatform),
		normalize.Model[ResourceObject](TypeResourceObject),
		normalize.Model[EngineDescription](TypeEngineDescription),
		normalize.Model[NodeStatus](TypeNodeStatus),
		normalize.Model[ManagerStatus](TypeManagerStatus),

		normalize.Model[Plugin](TypePlugin),
		normalize.Model[PluginSettings](TypePluginSettings),
		normalize.Model[PluginMount](TypePluginMount),

		normalize.Model[AuthConfig](TypeAuthConfig),
		normalize.Model[SystemVersion](TypeSystemVersion),
		normalize.Model[ErrorResponse](TypeErrorResponse),
		normalize.Model[IDResponse](TypeIDResponse),
	}
}

// TypeIDs returns the identifiers of every Docker model, in registration order.
func TypeIDs() []normalize.TypeID {
	return lo.Map(Entries(), func(e normalize.Entry, _ int) normalize.TypeID {
		return e.ID
	})
}

// Registry returns a new registry holding every Docker model. Each call
// returns an independent registry, so dispatchers for different API
// versions can coexist.
func Registry() *normalize.Registry {
	return normalize.NewRegistry().MustRegister(Entries()...)
}

// NewDispatcher builds a dispatcher over a fresh Docker registry.
func NewDispatcher(opts ...normalize.Option) (*normalize.Dispatcher, error) {
	return normalize.NewDispatcher(Registry(), opts...)
}

// timeEntry converts RFC 3339 timestamps. The engine reports the zero time
// as "0001-01-01T00:00:00Z", which decodes to the zero time.Time.
func timeEntry() normalize.Entry {
	return normalize.Func(TypeTime,
		func(s *normalize.Scope, raw any) (time.Time, error) {
			str, ok := raw.(string)
			if !ok {
				return time.Time{}, s.Malformed("RFC 3339 timestamp", raw)
			}
			t, err := time.Parse(time.RFC3339Nano, str)
			if err != nil {
				return time.Time{}, s.Malformed("RFC 3339 timestamp", raw)
			}
			return t, nil
		},
		func(_ *normalize.Scope, t time.Time) (any, error) {
			return t.Format(time.RFC3339Nano), nil
		},
	)
}
