package docker

import (
	"time"

	"github.com/zoobzio/normalize"
)

// NetworkSettings is the network section of a container inspect.
type NetworkSettings struct {
	normalize.Object

	Bridge     normalize.Field[string]                       `wire:"Bridge"`
	SandboxID  normalize.Field[string]                       `wire:"SandboxID"`
	SandboxKey normalize.Field[string]                       `wire:"SandboxKey"`
	Ports      normalize.Field[map[string][]PortBinding]     `wire:"Ports"`
	Networks   normalize.Field[map[string]*EndpointSettings] `wire:"Networks"`
}

// EndpointSettings describes a container's attachment to one network.
type EndpointSettings struct {
	normalize.Object

	Links               normalize.Field[[]string]          `wire:"Links"`
	Aliases             normalize.Field[[]string]          `wire:"Aliases"`
	MacAddress          normalize.Field[string]            `wire:"MacAddress"`
	DriverOpts          normalize.Field[map[string]string] `wire:"DriverOpts"`
	NetworkID           normalize.Field[string]            `wire:"NetworkID"`
	EndpointID          normalize.Field[string]            `wire:"EndpointID"`
	Gateway             normalize.Field[string]            `wire:"Gateway"`
	IPAddress           normalize.Field[string]            `wire:"IPAddress"`
	IPPrefixLen         normalize.Field[int]               `wire:"IPPrefixLen"`
	IPv6Gateway         normalize.Field[string]            `wire:"IPv6Gateway"`
	GlobalIPv6Address   normalize.Field[string]            `wire:"GlobalIPv6Address"`
	GlobalIPv6PrefixLen normalize.Field[int]               `wire:"GlobalIPv6PrefixLen"`
	DNSNames            normalize.Field[[]string]          `wire:"DNSNames"`
}

// Network is the body of GET /networks/{id}.
type Network struct {
	normalize.Object

	Name       normalize.Field[string]                      `wire:"Name"`
	ID         normalize.Field[string]                      `wire:"Id"`
	Created    normalize.Field[time.Time]                   `wire:"Created"`
	Scope      normalize.Field[string]                      `wire:"Scope"`
	Driver     normalize.Field[string]                      `wire:"Driver"`
	EnableIPv6 normalize.Field[bool]                        `wire:"EnableIPv6"`
	IPAM       normalize.Field[*IPAM]                       `wire:"IPAM"`
	Internal   normalize.Field[bool]                        `wire:"Internal"`
	Attachable normalize.Field[bool]                        `wire:"Attachable"`
	Ingress    normalize.Field[bool]                        `wire:"Ingress"`
	ConfigOnly normalize.Field[bool]                        `wire:"ConfigOnly"`
	Containers normalize.Field[map[string]NetworkContainer] `wire:"Containers"`
	Options    normalize.Field[map[string]string]           `wire:"Options"`
	Labels     normalize.Field[map[string]string]           `wire:"Labels"`
	Peers      normalize.Field[[]any]                       `wire:"Peers"`
}

// NetworkContainer is a container endpoint listed by network inspect.
type NetworkContainer struct {
	normalize.Object

	Name        normalize.Field[string] `wire:"Name"`
	EndpointID  normalize.Field[string] `wire:"EndpointID"`
	MacAddress  normalize.Field[string] `wire:"MacAddress"`
	IPv4Address normalize.Field[string] `wire:"IPv4Address"`
	IPv6Address normalize.Field[string] `wire:"IPv6Address"`
}

// IPAM is a network's address management configuration.
type IPAM struct {
	normalize.Object

	Driver  normalize.Field[string]            `wire:"Driver"`
	Config  normalize.Field[[]IPAMConfig]      `wire:"Config"`
	Options normalize.Field[map[string]string] `wire:"Options"`
}

// IPAMConfig is one address pool.
type IPAMConfig struct {
	normalize.Object

	Subnet     normalize.Field[string]            `wire:"Subnet"`
	IPRange    normalize.Field[string]            `wire:"IPRange"`
	Gateway    normalize.Field[string]            `wire:"Gateway"`
	AuxAddress normalize.Field[map[string]string] `wire:"AuxiliaryAddresses"`
}
