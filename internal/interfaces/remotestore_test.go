package interfaces

import (
	"encoding/json"
	"testing"
)

func TestSnapshotExists(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", false},
		{"null", false},
		{"  null\n", false},
		{"0", true},
		{`{}`, true},
		{`"x"`, true},
	}
	for _, tt := range tests {
		snap := Snapshot{Key: "k", Value: json.RawMessage(tt.raw)}
		if got := snap.Exists(); got != tt.want {
			t.Errorf("Exists(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestSnapshotChildrenFromObject(t *testing.T) {
	snap := Snapshot{Key: "menu", Value: json.RawMessage(`{"2":{"name":"b"},"1":{"name":"a"},"3":null}`)}

	children, err := snap.Children()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].Key != "1" || children[1].Key != "2" {
		t.Errorf("expected keys in order, got %q %q", children[0].Key, children[1].Key)
	}

	var item struct {
		Name string `json:"name"`
	}
	if err := children[1].Decode(&item); err != nil || item.Name != "b" {
		t.Errorf("decode child: %v %+v", err, item)
	}
}

func TestSnapshotChildrenFromSparseArray(t *testing.T) {
	snap := Snapshot{Key: "menu", Value: json.RawMessage(`[null,{"name":"a"},{"name":"b"},null,{"name":"d"}]`)}

	children, err := snap.Children()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := make([]string, len(children))
	for i, c := range children {
		keys[i] = c.Key
	}
	want := []string{"1", "2", "4"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestSnapshotChildrenOfScalar(t *testing.T) {
	snap := Snapshot{Key: "quantity", Value: json.RawMessage(`12`)}

	if _, err := snap.Children(); err == nil {
		t.Error("expected an error for a scalar value")
	}

	empty := Snapshot{Key: "orders", Value: json.RawMessage(`null`)}
	children, err := empty.Children()
	if err != nil || len(children) != 0 {
		t.Errorf("expected no children for a missing node, got %v %v", children, err)
	}
}
