package docker_test

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/normalize"
	"github.com/zoobzio/normalize/docker"
	"github.com/zoobzio/normalize/json"
)

const containerInspect = `{
  "Id": "ba033ac4401106a3b513bc9d639eee123ad78ca3616b921167cd74b20e25ed39",
  "Created": "2024-03-01T10:20:30.123456789Z",
  "Path": "/bin/sh",
  "Args": ["-c", "exit 9"],
  "State": {
    "Status": "running",
    "Running": true,
    "Paused": false,
    "OOMKilled": 0,
    "Pid": 1234,
    "ExitCode": 0,
    "StartedAt": "2024-03-01T10:20:31Z",
    "FinishedAt": "0001-01-01T00:00:00Z",
    "Health": {
      "Status": "healthy",
      "FailingStreak": 0,
      "Log": [
        {"Start": "2024-03-01T10:21:00Z", "End": "2024-03-01T10:21:01Z", "ExitCode": 0, "Output": "ok"}
      ]
    }
  },
  "Image": "sha256:04a9b5b7",
  "Name": "/web",
  "RestartCount": 0,
  "HostConfig": {
    "NetworkMode": "bridge",
    "PortBindings": {"80/tcp": [{"HostIp": "", "HostPort": "8080"}]},
    "RestartPolicy": {"Name": "always", "MaximumRetryCount": 0},
    "Memory": 0,
    "PidsLimit": null
  },
  "GraphDriver": {"Name": "overlay2", "Data": {"MergedDir": "/var/lib/docker/overlay2/x/merged"}},
  "Config": {
    "Hostname": "ba033ac44011",
    "Env": ["PATH=/usr/bin"],
    "Cmd": ["/bin/sh", "-c", "exit 9"],
    "ExposedPorts": {"80/tcp": {}},
    "Labels": {"com.example.vendor": "Acme"},
    "Healthcheck": {"Test": ["CMD", "true"], "Interval": 30000000000}
  },
  "NetworkSettings": {
    "SandboxKey": "/var/run/docker/netns/8ab54b426c38",
    "Ports": {"80/tcp": [{"HostIp": "0.0.0.0", "HostPort": "8080"}], "443/tcp": null},
    "Networks": {
      "bridge": {"NetworkID": "7ea29fc1412292a2d7bba362f9253545fecdfa8ce9a6e37dd10ba8bee7129812", "IPAddress": "172.17.0.2", "IPPrefixLen": 16}
    }
  }
}`

func newDispatcher(t *testing.T, opts ...normalize.Option) *normalize.Dispatcher {
	t.Helper()
	d, err := docker.NewDispatcher(opts...)
	require.NoError(t, err)
	return d
}

func TestRegistry(t *testing.T) {
	t.Run("closed under nesting", func(t *testing.T) {
		reg := docker.Registry()
		require.NoError(t, reg.Validate())
		assert.Equal(t, len(docker.Entries()), reg.Len())
	})

	t.Run("independent instances", func(t *testing.T) {
		v1 := docker.Registry()
		v2 := docker.Registry()
		_, err := normalize.NewDispatcher(v1)
		require.NoError(t, err)

		assert.True(t, v1.Sealed())
		assert.False(t, v2.Sealed())
	})

	t.Run("every id registered", func(t *testing.T) {
		d := newDispatcher(t)
		for _, id := range docker.TypeIDs() {
			assert.True(t, d.CanDecode(id), "type %s", id)
		}
	})
}

func TestContainerInspect(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	v, err := d.Unmarshal(ctx, json.New(), docker.TypeContainer, []byte(containerInspect))
	require.NoError(t, err)

	c, ok := v.(*docker.Container)
	require.True(t, ok, "got %T", v)

	assert.Equal(t, "/web", c.Name.Value())
	assert.Equal(t, []string{"-c", "exit 9"}, c.Args.Value())
	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 123456789, time.UTC), c.Created.Value())

	state := c.State.Value()
	require.NotNil(t, state)
	assert.True(t, state.Running.Value())
	assert.False(t, state.OOMKilled.Value(), "0 decodes as false")
	assert.True(t, state.OOMKilled.IsSet())
	assert.Equal(t, 1234, state.Pid.Value())
	assert.True(t, state.FinishedAt.Value().IsZero())
	assert.Equal(t, "ok", state.Health.Value().Log.Value()[0].Output.Value())

	host := c.HostConfig.Value()
	assert.True(t, host.PidsLimit.IsNull())
	assert.Equal(t, "8080", host.PortBindings.Value()["80/tcp"][0].HostPort.Value())
	assert.Equal(t, "always", host.RestartPolicy.Value().Name.Value())

	assert.Equal(t, int64(30000000000), c.Config.Value().Healthcheck.Value().Interval.Value())
	assert.Contains(t, c.Config.Value().ExposedPorts.Value(), "80/tcp")

	graph, ok := c.GraphDriver.Value().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "overlay2", graph["Name"])

	net := c.NetworkSettings.Value()
	assert.Nil(t, net.Ports.Value()["443/tcp"])
	assert.Equal(t, 16, net.Networks.Value()["bridge"].IPPrefixLen.Value())

	// Not present in the body.
	assert.False(t, c.SizeRw.IsSet())
	assert.False(t, c.Mounts.IsSet())
}

func TestContainerInspectRoundTrip(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()
	codec := json.New()

	var tree any
	require.NoError(t, codec.Unmarshal([]byte(containerInspect), &tree))
	want, err := normalize.Canonical(tree)
	require.NoError(t, err)

	v, err := d.Decode(ctx, docker.TypeContainer, want)
	require.NoError(t, err)

	got, err := d.Encode(ctx, v)
	require.NoError(t, err)

	// OOMKilled was sent as 0 and comes back as a boolean.
	wantState := want.(map[string]any)["State"].(map[string]any)
	wantState["OOMKilled"] = false

	assert.Equal(t, want, got)
}

func TestContainerUpdate(t *testing.T) {
	d := newDispatcher(t)

	upd := &docker.ContainerUpdate{
		Memory:    normalize.Some(int64(314572800)),
		PidsLimit: normalize.Null[int64](),
		RestartPolicy: normalize.Some(&docker.RestartPolicy{
			Name: normalize.Some("on-failure"),
		}),
	}

	got, err := d.Encode(context.Background(), upd)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"Memory":        int64(314572800),
		"PidsLimit":     nil,
		"RestartPolicy": map[string]any{"Name": "on-failure"},
	}, got)
}

func TestAuthConfigRedaction(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	auth := &docker.AuthConfig{
		Username:      normalize.Some("hannibal"),
		Password:      normalize.Some("xxxx"),
		ServerAddress: normalize.Some("https://index.docker.io/v1/"),
	}

	plain, err := d.Encode(ctx, auth)
	require.NoError(t, err)
	assert.Equal(t, "xxxx", plain.(map[string]any)["password"])

	redacted, err := d.Encode(ctx, auth, normalize.WithRedaction("***"))
	require.NoError(t, err)

	m := redacted.(map[string]any)
	assert.Equal(t, "***", m["password"])
	assert.Equal(t, "hannibal", m["username"])
	assert.NotContains(t, m, "identitytoken", "unset secrets stay absent")
}

func TestServiceNestedReference(t *testing.T) {
	d := newDispatcher(t, normalize.WithDefaultOrigin("services.yaml"))
	ctx := context.Background()

	raw := map[string]any{
		"ID":      "9mnpnzenvg8p8tdbtq4wvbkcz",
		"Version": map[string]any{"Index": int64(19)},
		"Spec": map[string]any{
			"Name": "web",
			"TaskTemplate": map[string]any{
				"$ref": "#/definitions/webTask",
			},
			"Mode": map[string]any{"Replicated": map[string]any{"Replicas": int64(3)}},
		},
	}

	svc, ref, err := normalize.DecodeAs[docker.Service](ctx, d, raw)
	require.NoError(t, err)
	require.Nil(t, ref)

	spec := svc.Spec.Value()
	assert.Equal(t, uint64(19), svc.Version.Value().Index.Value())
	assert.Equal(t, uint64(3), spec.Mode.Value().Replicated.Value().Replicas.Value())

	task := spec.TaskTemplate.Value()
	require.NotNil(t, task)
	r, ok := task.Reference()
	require.True(t, ok)
	assert.Equal(t, "#/definitions/webTask", r.Token)
	assert.Equal(t, "services.yaml", r.Origin)

	out, err := d.Encode(ctx, svc)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestTopLevelReference(t *testing.T) {
	d := newDispatcher(t)

	node, ref, err := normalize.DecodeAs[docker.Node](context.Background(), d,
		map[string]any{"$recursiveRef": "#", "ID": "ignored"},
		normalize.WithOrigin("nodes.json"))
	require.NoError(t, err)
	assert.Nil(t, node)
	require.NotNil(t, ref)
	assert.True(t, ref.Recursive)
	assert.Equal(t, "nodes.json", ref.Origin)
}

func TestMalformedTimestamp(t *testing.T) {
	raw := map[string]any{
		"ID":        "abc",
		"CreatedAt": "yesterday",
	}

	t.Run("fail fast", func(t *testing.T) {
		d := newDispatcher(t)
		_, err := d.Decode(context.Background(), docker.TypeTask, raw)
		require.Error(t, err)
		assert.True(t, errors.Is(err, normalize.ErrMalformedWire))

		var we *normalize.WireError
		require.True(t, errors.As(err, &we))
		assert.Equal(t, "CreatedAt", we.Path)
	})

	t.Run("tolerant", func(t *testing.T) {
		d := newDispatcher(t, normalize.WithTolerant(true))
		v, err := d.Decode(context.Background(), docker.TypeTask, raw)
		require.NoError(t, err)

		task := v.(*docker.Task)
		assert.Equal(t, "abc", task.ID.Value())
		assert.False(t, task.CreatedAt.IsSet())
	})
}

func TestSwarmTaskAttachments(t *testing.T) {
	d := newDispatcher(t)

	raw := map[string]any{
		"ID":        "0kzzo1i0y4jz6027t0k7aezc7",
		"ServiceID": "9mnpnzenvg8p8tdbtq4wvbkcz",
		"NodeID":    "60gvrl6tm78dmak4yl7srz94v",
		"Status": map[string]any{
			"State":           "running",
			"ContainerStatus": map[string]any{"ContainerID": "e5d62702a1b4", "PID": int64(677)},
		},
		"NetworksAttachments": []any{
			map[string]any{
				"Network": map[string]any{
					"ID":   "4qvuz4ko70xaltuqbt8956gd1",
					"Spec": map[string]any{"Name": "ingress", "Ingress": true},
				},
				"Addresses": []any{"10.255.0.10/16"},
			},
		},
	}

	task, _, err := normalize.DecodeAs[docker.Task](context.Background(), d, raw)
	require.NoError(t, err)

	atts := task.NetworksAttachments.Value()
	require.Len(t, atts, 1)
	assert.Equal(t, "ingress", atts[0].Network.Value().Spec.Value().Name.Value())
	assert.Equal(t, []string{"10.255.0.10/16"}, atts[0].Addresses.Value())
	assert.Equal(t, 677, task.Status.Value().ContainerStatus.Value().PID.Value())
}
