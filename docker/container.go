package docker

import (
	"time"

	"github.com/zoobzio/normalize"
)

// ContainerSummary is one entry of GET /containers/json.
type ContainerSummary struct {
	normalize.Object

	ID         normalize.Field[string]            `wire:"Id"`
	Names      normalize.Field[[]string]          `wire:"Names"`
	Image      normalize.Field[string]            `wire:"Image"`
	ImageID    normalize.Field[string]            `wire:"ImageID"`
	Command    normalize.Field[string]            `wire:"Command"`
	Created    normalize.Field[int64]             `wire:"Created"`
	Ports      normalize.Field[[]Port]            `wire:"Ports"`
	SizeRw     normalize.Field[int64]             `wire:"SizeRw"`
	SizeRootFs normalize.Field[int64]             `wire:"SizeRootFs"`
	Labels     normalize.Field[map[string]string] `wire:"Labels"`
	State      normalize.Field[string]            `wire:"State"`
	Status     normalize.Field[string]            `wire:"Status"`
	Mounts     normalize.Field[[]MountPoint]      `wire:"Mounts"`
}

// Port is a published port of a running container.
type Port struct {
	normalize.Object

	IP          normalize.Field[string] `wire:"IP"`
	PrivatePort normalize.Field[uint16] `wire:"PrivatePort"`
	PublicPort  normalize.Field[uint16] `wire:"PublicPort"`
	Type        normalize.Field[string] `wire:"Type"`
}

// Container is the body of GET /containers/{id}/json.
type Container struct {
	normalize.Object

	ID              normalize.Field[string]           `wire:"Id"`
	Created         normalize.Field[time.Time]        `wire:"Created"`
	Path            normalize.Field[string]           `wire:"Path"`
	Args            normalize.Field[[]string]         `wire:"Args"`
	State           normalize.Field[*ContainerState]  `wire:"State"`
	Image           normalize.Field[string]           `wire:"Image"`
	ResolvConfPath  normalize.Field[string]           `wire:"ResolvConfPath"`
	HostnamePath    normalize.Field[string]           `wire:"HostnamePath"`
	HostsPath       normalize.Field[string]           `wire:"HostsPath"`
	LogPath         normalize.Field[string]           `wire:"LogPath"`
	Name            normalize.Field[string]           `wire:"Name"`
	RestartCount    normalize.Field[int]              `wire:"RestartCount"`
	Driver          normalize.Field[string]           `wire:"Driver"`
	Platform        normalize.Field[string]           `wire:"Platform"`
	MountLabel      normalize.Field[string]           `wire:"MountLabel"`
	ProcessLabel    normalize.Field[string]           `wire:"ProcessLabel"`
	AppArmorProfile normalize.Field[string]           `wire:"AppArmorProfile"`
	ExecIDs         normalize.Field[[]string]         `wire:"ExecIDs"`
	HostConfig      normalize.Field[*HostConfig]      `wire:"HostConfig"`
	GraphDriver     normalize.Field[any]              `wire:"GraphDriver"`
	SizeRw          normalize.Field[int64]            `wire:"SizeRw"`
	SizeRootFs      normalize.Field[int64]            `wire:"SizeRootFs"`
	Mounts          normalize.Field[[]MountPoint]     `wire:"Mounts"`
	Config          normalize.Field[*ContainerConfig] `wire:"Config"`
	NetworkSettings normalize.Field[*NetworkSettings] `wire:"NetworkSettings"`
}

// ContainerState is the runtime state of a container.
type ContainerState struct {
	normalize.Object

	Status     normalize.Field[string]    `wire:"Status"`
	Running    normalize.Field[bool]      `wire:"Running"`
	Paused     normalize.Field[bool]      `wire:"Paused"`
	Restarting normalize.Field[bool]      `wire:"Restarting"`
	OOMKilled  normalize.Field[bool]      `wire:"OOMKilled"`
	Dead       normalize.Field[bool]      `wire:"Dead"`
	Pid        normalize.Field[int]       `wire:"Pid"`
	ExitCode   normalize.Field[int]       `wire:"ExitCode"`
	Error      normalize.Field[string]    `wire:"Error"`
	StartedAt  normalize.Field[time.Time] `wire:"StartedAt"`
	FinishedAt normalize.Field[time.Time] `wire:"FinishedAt"`
	Health     normalize.Field[*Health]   `wire:"Health"`
}

// Health is the healthcheck state of a container.
type Health struct {
	normalize.Object

	Status        normalize.Field[string]              `wire:"Status"`
	FailingStreak normalize.Field[int]                 `wire:"FailingStreak"`
	Log           normalize.Field[[]HealthcheckResult] `wire:"Log"`
}

// HealthcheckResult is one probe run.
type HealthcheckResult struct {
	normalize.Object

	Start    normalize.Field[time.Time] `wire:"Start"`
	End      normalize.Field[time.Time] `wire:"End"`
	ExitCode normalize.Field[int]       `wire:"ExitCode"`
	Output   normalize.Field[string]    `wire:"Output"`
}

// ContainerConfig is the portable part of a container's configuration.
type ContainerConfig struct {
	normalize.Object

	Hostname     normalize.Field[string]            `wire:"Hostname"`
	Domainname   normalize.Field[string]            `wire:"Domainname"`
	User         normalize.Field[string]            `wire:"User"`
	AttachStdin  normalize.Field[bool]              `wire:"AttachStdin"`
	AttachStdout normalize.Field[bool]              `wire:"AttachStdout"`
	AttachStderr normalize.Field[bool]              `wire:"AttachStderr"`
	ExposedPorts normalize.Field[map[string]any]    `wire:"ExposedPorts"`
	Tty          normalize.Field[bool]              `wire:"Tty"`
	OpenStdin    normalize.Field[bool]              `wire:"OpenStdin"`
	StdinOnce    normalize.Field[bool]              `wire:"StdinOnce"`
	Env          normalize.Field[[]string]          `wire:"Env"`
	Cmd          normalize.Field[[]string]          `wire:"Cmd"`
	Healthcheck  normalize.Field[*HealthConfig]     `wire:"Healthcheck"`
	Image        normalize.Field[string]            `wire:"Image"`
	Volumes      normalize.Field[map[string]any]    `wire:"Volumes"`
	WorkingDir   normalize.Field[string]            `wire:"WorkingDir"`
	Entrypoint   normalize.Field[[]string]          `wire:"Entrypoint"`
	Labels       normalize.Field[map[string]string] `wire:"Labels"`
	StopSignal   normalize.Field[string]            `wire:"StopSignal"`
	StopTimeout  normalize.Field[int]               `wire:"StopTimeout"`
	Shell        normalize.Field[[]string]          `wire:"Shell"`
}

// HealthConfig configures a container healthcheck. Durations are in
// nanoseconds.
type HealthConfig struct {
	normalize.Object

	Test          normalize.Field[[]string] `wire:"Test"`
	Interval      normalize.Field[int64]    `wire:"Interval"`
	Timeout       normalize.Field[int64]    `wire:"Timeout"`
	Retries       normalize.Field[int]      `wire:"Retries"`
	StartPeriod   normalize.Field[int64]    `wire:"StartPeriod"`
	StartInterval normalize.Field[int64]    `wire:"StartInterval"`
}

// HostConfig is the non-portable part of a container's configuration.
type HostConfig struct {
	normalize.Object

	Binds           normalize.Field[[]string]                 `wire:"Binds"`
	ContainerIDFile normalize.Field[string]                   `wire:"ContainerIDFile"`
	LogConfig       normalize.Field[*LogConfig]               `wire:"LogConfig"`
	NetworkMode     normalize.Field[string]                   `wire:"NetworkMode"`
	PortBindings    normalize.Field[map[string][]PortBinding] `wire:"PortBindings"`
	RestartPolicy   normalize.Field[*RestartPolicy]           `wire:"RestartPolicy"`
	AutoRemove      normalize.Field[bool]                     `wire:"AutoRemove"`
	VolumeDriver    normalize.Field[string]                   `wire:"VolumeDriver"`
	VolumesFrom     normalize.Field[[]string]                 `wire:"VolumesFrom"`
	Mounts          normalize.Field[[]Mount]                  `wire:"Mounts"`
	CapAdd          normalize.Field[[]string]                 `wire:"CapAdd"`
	CapDrop         normalize.Field[[]string]                 `wire:"CapDrop"`
	DNS             normalize.Field[[]string]                 `wire:"Dns"`
	ExtraHosts      normalize.Field[[]string]                 `wire:"ExtraHosts"`
	Privileged      normalize.Field[bool]                     `wire:"Privileged"`
	PublishAllPorts normalize.Field[bool]                     `wire:"PublishAllPorts"`
	ReadonlyRootfs  normalize.Field[bool]                     `wire:"ReadonlyRootfs"`
	SecurityOpt     normalize.Field[[]string]                 `wire:"SecurityOpt"`
	Tmpfs           normalize.Field[map[string]string]        `wire:"Tmpfs"`
	ShmSize         normalize.Field[int64]                    `wire:"ShmSize"`
	Init            normalize.Field[bool]                     `wire:"Init"`
	Memory          normalize.Field[int64]                    `wire:"Memory"`
	MemorySwap      normalize.Field[int64]                    `wire:"MemorySwap"`
	NanoCpus        normalize.Field[int64]                    `wire:"NanoCpus"`
	CPUShares       normalize.Field[int64]                    `wire:"CpuShares"`
	PidsLimit       normalize.Field[int64]                    `wire:"PidsLimit"`
}

// LogConfig selects a logging driver.
type LogConfig struct {
	normalize.Object

	Type   normalize.Field[string]            `wire:"Type"`
	Config normalize.Field[map[string]string] `wire:"Config"`
}

// RestartPolicy controls restarts of exited containers.
type RestartPolicy struct {
	normalize.Object

	Name              normalize.Field[string] `wire:"Name"`
	MaximumRetryCount normalize.Field[int]    `wire:"MaximumRetryCount"`
}

// PortBinding maps a container port to a host address.
type PortBinding struct {
	normalize.Object

	HostIP   normalize.Field[string] `wire:"HostIp"`
	HostPort normalize.Field[string] `wire:"HostPort"`
}

// Mount is a mount requested at container creation.
type Mount struct {
	normalize.Object

	Target        normalize.Field[string] `wire:"Target"`
	Source        normalize.Field[string] `wire:"Source"`
	Type          normalize.Field[string] `wire:"Type"`
	ReadOnly      normalize.Field[bool]   `wire:"ReadOnly"`
	Consistency   normalize.Field[string] `wire:"Consistency"`
	BindOptions   normalize.Field[any]    `wire:"BindOptions"`
	VolumeOptions normalize.Field[any]    `wire:"VolumeOptions"`
	TmpfsOptions  normalize.Field[any]    `wire:"TmpfsOptions"`
}

// MountPoint is a mount as reported by inspect and list.
type MountPoint struct {
	normalize.Object

	Type        normalize.Field[string] `wire:"Type"`
	Name        normalize.Field[string] `wire:"Name"`
	Source      normalize.Field[string] `wire:"Source"`
	Destination normalize.Field[string] `wire:"Destination"`
	Driver      normalize.Field[string] `wire:"Driver"`
	Mode        normalize.Field[string] `wire:"Mode"`
	RW          normalize.Field[bool]   `wire:"RW"`
	Propagation normalize.Field[string] `wire:"Propagation"`
}

// ContainerUpdate is the body of POST /containers/{id}/update. Only the
// initialized fields are sent, and a null field resets the limit.
type ContainerUpdate struct {
	normalize.Object

	CPUShares         normalize.Field[int64]          `wire:"CpuShares"`
	Memory            normalize.Field[int64]          `wire:"Memory"`
	MemorySwap        normalize.Field[int64]          `wire:"MemorySwap"`
	MemoryReservation normalize.Field[int64]          `wire:"MemoryReservation"`
	NanoCpus          normalize.Field[int64]          `wire:"NanoCpus"`
	CPUQuota          normalize.Field[int64]          `wire:"CpuQuota"`
	CPUPeriod         normalize.Field[int64]          `wire:"CpuPeriod"`
	CpusetCpus        normalize.Field[string]         `wire:"CpusetCpus"`
	PidsLimit         normalize.Field[int64]          `wire:"PidsLimit"`
	RestartPolicy     normalize.Field[*RestartPolicy] `wire:"RestartPolicy"`
}

// ContainerCreateResponse is the body returned by POST /containers/create.
type ContainerCreateResponse struct {
	normalize.Object

	ID       normalize.Field[string]   `wire:"Id"`
	Warnings normalize.Field[[]string] `wire:"Warnings"`
}
