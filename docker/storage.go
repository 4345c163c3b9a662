package docker

import (
	"github.com/zoobzio/normalize"
)

// Volume is the body of GET /volumes/{name}.
type Volume struct {
	normalize.Object

	Name       normalize.Field[string]            `wire:"Name"`
	Driver     normalize.Field[string]            `wire:"Driver"`
	Mountpoint normalize.Field[string]            `wire:"Mountpoint"`
	CreatedAt  normalize.Field[string]            `wire:"CreatedAt"`
	Status     normalize.Field[map[string]any]    `wire:"Status"`
	Labels     normalize.Field[map[string]string] `wire:"Labels"`
	Scope      normalize.Field[string]            `wire:"Scope"`
	Options    normalize.Field[map[string]string] `wire:"Options"`
	UsageData  normalize.Field[*VolumeUsageData]  `wire:"UsageData"`
}

// VolumeUsageData is reported by GET /system/df. -1 means not available.
type VolumeUsageData struct {
	normalize.Object

	Size     normalize.Field[int64] `wire:"Size"`
	RefCount normalize.Field[int64] `wire:"RefCount"`
}

// ImageSummary is one entry of GET /images/json.
type ImageSummary struct {
	normalize.Object

	ID          normalize.Field[string]            `wire:"Id"`
	ParentID    normalize.Field[string]            `wire:"ParentId"`
	RepoTags    normalize.Field[[]string]          `wire:"RepoTags"`
	RepoDigests normalize.Field[[]string]          `wire:"RepoDigests"`
	Created     normalize.Field[int64]             `wire:"Created"`
	Size        normalize.Field[int64]             `wire:"Size"`
	SharedSize  normalize.Field[int64]             `wire:"SharedSize"`
	Labels      normalize.Field[map[string]string] `wire:"Labels"`
	Containers  normalize.Field[int64]             `wire:"Containers"`
}
