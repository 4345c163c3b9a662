package json

import (
	stdjson "encoding/json"
	"testing"

	"github.com/zoobzio/normalize"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestMarshal_SortedKeys(t *testing.T) {
	c := New()

	data, err := c.Marshal(map[string]any{"y": int64(2), "x": int64(1), "label": nil})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `{"label":null,"x":1,"y":2}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestUnmarshal_Numbers(t *testing.T) {
	c := New()

	var tree any
	if err := c.Unmarshal([]byte(`{"count":3,"ratio":0.5,"big":9007199254740993}`), &tree); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	m := tree.(map[string]any)
	if n, ok := m["count"].(stdjson.Number); !ok || n.String() != "3" {
		t.Errorf("count = %#v, want json.Number(3)", m["count"])
	}

	canon, err := normalize.Canonical(tree)
	if err != nil {
		t.Fatalf("Canonical() error: %v", err)
	}
	cm := canon.(map[string]any)
	if cm["count"] != int64(3) {
		t.Errorf("count = %#v, want int64(3)", cm["count"])
	}
	if cm["ratio"] != 0.5 {
		t.Errorf("ratio = %#v, want 0.5", cm["ratio"])
	}
	if cm["big"] != int64(9007199254740993) {
		t.Errorf("big = %#v, want exact int64", cm["big"])
	}
}

func TestMarshalNil(t *testing.T) {
	c := New()

	data, err := c.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}

	if string(data) != "null" {
		t.Errorf("Marshal(nil) = %q, want %q", data, "null")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v any
	err := c.Unmarshal([]byte("invalid json"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
