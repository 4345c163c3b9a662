package docker

import (
	"time"

	"github.com/zoobzio/normalize"
)

// Service is a swarm service as returned by GET /services.
type Service struct {
	normalize.Object

	ID        normalize.Field[string]         `wire:"ID"`
	Version   normalize.Field[*ObjectVersion] `wire:"Version"`
	CreatedAt normalize.Field[time.Time]      `wire:"CreatedAt"`
	UpdatedAt normalize.Field[time.Time]      `wire:"UpdatedAt"`
	Spec      normalize.Field[*ServiceSpec]   `wire:"Spec"`
	Endpoint  normalize.Field[any]            `wire:"Endpoint"`
}

// ObjectVersion is the optimistic-concurrency index of a swarm object.
type ObjectVersion struct {
	normalize.Object

	Index normalize.Field[uint64] `wire:"Index"`
}

// ServiceSpec is the user-modifiable part of a service.
type ServiceSpec struct {
	normalize.Object

	Name         normalize.Field[string]                    `wire:"Name"`
	Labels       normalize.Field[map[string]string]         `wire:"Labels"`
	TaskTemplate normalize.Field[*TaskSpec]                 `wire:"TaskTemplate"`
	Mode         normalize.Field[*ServiceMode]              `wire:"Mode"`
	Networks     normalize.Field[[]NetworkAttachmentConfig] `wire:"Networks"`
	EndpointSpec normalize.Field[any]                       `wire:"EndpointSpec"`
}

// ServiceMode selects replicated or global scheduling.
type ServiceMode struct {
	normalize.Object

	Replicated normalize.Field[*ReplicatedService] `wire:"Replicated"`
	Global     normalize.Field[map[string]any]     `wire:"Global"`
}

// ReplicatedService is the replicated scheduling mode.
type ReplicatedService struct {
	normalize.Object

	Replicas normalize.Field[uint64] `wire:"Replicas"`
}

// TaskSpec is the template tasks of a service are created from.
type TaskSpec struct {
	normalize.Object

	ContainerSpec normalize.Field[*ContainerSpec]            `wire:"ContainerSpec"`
	PluginSpec    normalize.Field[any]                       `wire:"PluginSpec"`
	Resources     normalize.Field[any]                       `wire:"Resources"`
	RestartPolicy normalize.Field[any]                       `wire:"RestartPolicy"`
	Placement     normalize.Field[any]                       `wire:"Placement"`
	ForceUpdate   normalize.Field[int]                       `wire:"ForceUpdate"`
	Runtime       normalize.Field[string]                    `wire:"Runtime"`
	Networks      normalize.Field[[]NetworkAttachmentConfig] `wire:"Networks"`
	LogDriver     normalize.Field[*LogConfig]                `wire:"LogDriver"`
}

// ContainerSpec describes the container a swarm task runs.
type ContainerSpec struct {
	normalize.Object

	Image           normalize.Field[string]            `wire:"Image"`
	Labels          normalize.Field[map[string]string] `wire:"Labels"`
	Command         normalize.Field[[]string]          `wire:"Command"`
	Args            normalize.Field[[]string]          `wire:"Args"`
	Hostname        normalize.Field[string]            `wire:"Hostname"`
	Env             normalize.Field[[]string]          `wire:"Env"`
	Dir             normalize.Field[string]            `wire:"Dir"`
	User            normalize.Field[string]            `wire:"User"`
	Groups          normalize.Field[[]string]          `wire:"Groups"`
	TTY             normalize.Field[bool]              `wire:"TTY"`
	OpenStdin       normalize.Field[bool]              `wire:"OpenStdin"`
	ReadOnly        normalize.Field[bool]              `wire:"ReadOnly"`
	Mounts          normalize.Field[[]Mount]           `wire:"Mounts"`
	StopSignal      normalize.Field[string]            `wire:"StopSignal"`
	StopGracePeriod normalize.Field[int64]             `wire:"StopGracePeriod"`
	HealthCheck     normalize.Field[*HealthConfig]     `wire:"HealthCheck"`
	Hosts           normalize.Field[[]string]          `wire:"Hosts"`
	Init            normalize.Field[bool]              `wire:"Init"`
}

// NetworkAttachmentConfig attaches a service to a network.
type NetworkAttachmentConfig struct {
	normalize.Object

	Target     normalize.Field[string]            `wire:"Target"`
	Aliases    normalize.Field[[]string]          `wire:"Aliases"`
	DriverOpts normalize.Field[map[string]string] `wire:"DriverOpts"`
}

// Task is one scheduled unit of a service.
type Task struct {
	normalize.Object

	ID                  normalize.Field[string]              `wire:"ID"`
	Version             normalize.Field[*ObjectVersion]      `wire:"Version"`
	CreatedAt           normalize.Field[time.Time]           `wire:"CreatedAt"`
	UpdatedAt           normalize.Field[time.Time]           `wire:"UpdatedAt"`
	Name                normalize.Field[string]              `wire:"Name"`
	Labels              normalize.Field[map[string]string]   `wire:"Labels"`
	Spec                normalize.Field[*TaskSpec]           `wire:"Spec"`
	ServiceID           normalize.Field[string]              `wire:"ServiceID"`
	Slot                normalize.Field[int]                 `wire:"Slot"`
	NodeID              normalize.Field[string]              `wire:"NodeID"`
	Status              normalize.Field[*TaskStatus]         `wire:"Status"`
	DesiredState        normalize.Field[string]              `wire:"DesiredState"`
	NetworksAttachments normalize.Field[[]NetworkAttachment] `wire:"NetworksAttachments"`
}

// TaskStatus is the observed state of a task.
type TaskStatus struct {
	normalize.Object

	Timestamp       normalize.Field[time.Time]        `wire:"Timestamp"`
	State           normalize.Field[string]           `wire:"State"`
	Message         normalize.Field[string]           `wire:"Message"`
	Err             normalize.Field[string]           `wire:"Err"`
	ContainerStatus normalize.Field[*ContainerStatus] `wire:"ContainerStatus"`
}

// ContainerStatus links a task to the container backing it.
type ContainerStatus struct {
	normalize.Object

	ContainerID normalize.Field[string] `wire:"ContainerID"`
	PID         normalize.Field[int]    `wire:"PID"`
	ExitCode    normalize.Field[int]    `wire:"ExitCode"`
}

// NetworkAttachment is a task's address on one swarm network.
type NetworkAttachment struct {
	normalize.Object

	Network   normalize.Field[*SwarmNetwork] `wire:"Network"`
	Addresses normalize.Field[[]string]      `wire:"Addresses"`
}

// SwarmNetwork is a network as embedded in task attachments.
type SwarmNetwork struct {
	normalize.Object

	ID      normalize.Field[string]         `wire:"ID"`
	Version normalize.Field[*ObjectVersion] `wire:"Version"`
	Spec    normalize.Field[*NetworkSpec]   `wire:"Spec"`
}

// NetworkSpec is the user-modifiable part of a swarm network.
type NetworkSpec struct {
	normalize.Object

	Name       normalize.Field[string]            `wire:"Name"`
	Labels     normalize.Field[map[string]string] `wire:"Labels"`
	Scope      normalize.Field[string]            `wire:"Scope"`
	Attachable normalize.Field[bool]              `wire:"Attachable"`
	Ingress    normalize.Field[bool]              `wire:"Ingress"`
	IPAM       normalize.Field[*IPAM]             `wire:"IPAMOptions"`
}

// Node is a swarm member as returned by GET /nodes.
type Node struct {
	normalize.Object

	ID            normalize.Field[string]           `wire:"ID"`
	Version       normalize.Field[*ObjectVersion]   `wire:"Version"`
	CreatedAt     normalize.Field[time.Time]        `wire:"CreatedAt"`
	UpdatedAt     normalize.Field[time.Time]        `wire:"UpdatedAt"`
	Spec          normalize.Field[*NodeSpec]        `wire:"Spec"`
	Description   normalize.Field[*NodeDescription] `wire:"Description"`
	Status        normalize.Field[*NodeStatus]      `wire:"Status"`
	ManagerStatus normalize.Field[*ManagerStatus]   `wire:"ManagerStatus"`
}

// NodeSpec is the user-modifiable part of a node.
type NodeSpec struct {
	normalize.Object

	Name         normalize.Field[string]            `wire:"Name"`
	Labels       normalize.Field[map[string]string] `wire:"Labels"`
	Role         normalize.Field[string]            `wire:"Role"`
	Availability normalize.Field[string]            `wire:"Availability"`
}

// NodeDescription is what a node reports about itself.
type NodeDescription struct {
	normalize.Object

	Hostname  normalize.Field[string]             `wire:"Hostname"`
	Platform  normalize.Field[*Platform]          `wire:"Platform"`
	Resources normalize.Field[*ResourceObject]    `wire:"Resources"`
	Engine    normalize.Field[*EngineDescription] `wire:"Engine"`
	TLSInfo   normalize.Field[any]                `wire:"TLSInfo"`
}

// Platform is an OS and architecture pair.
type Platform struct {
	normalize.Object

	Architecture normalize.Field[string] `wire:"Architecture"`
	OS           normalize.Field[string] `wire:"OS"`
}

// ResourceObject lists a node's capacity.
type ResourceObject struct {
	normalize.Object

	NanoCPUs         normalize.Field[int64] `wire:"NanoCPUs"`
	MemoryBytes      normalize.Field[int64] `wire:"MemoryBytes"`
	GenericResources normalize.Field[[]any] `wire:"GenericResources"`
}

// EngineDescription describes the engine running on a node.
type EngineDescription struct {
	normalize.Object

	EngineVersion normalize.Field[string]            `wire:"EngineVersion"`
	Labels        normalize.Field[map[string]string] `wire:"Labels"`
	Plugins       normalize.Field[[]map[string]any]  `wire:"Plugins"`
}

// NodeStatus is the observed state of a node.
type NodeStatus struct {
	normalize.Object

	State   normalize.Field[string] `wire:"State"`
	Message normalize.Field[string] `wire:"Message"`
	Addr    normalize.Field[string] `wire:"Addr"`
}

// ManagerStatus is set on manager nodes only.
type ManagerStatus struct {
	normalize.Object

	Leader       normalize.Field[bool]   `wire:"Leader"`
	Reachability normalize.Field[string] `wire:"Reachability"`
	Addr         normalize.Field[string] `wire:"Addr"`
}
