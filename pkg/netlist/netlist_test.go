package netlist

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lightfab/picroute/pkg/errors"
)

func TestTableAdd(t *testing.T) {
	tbl := New()
	if err := tbl.Add("g1", []string{"p1", "p2"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	tests := []struct {
		name  string
		group string
		ports []string
	}{
		{"duplicate", "g1", []string{"p3"}},
		{"empty name", "", []string{"p1"}},
		{"no ports", "g2", nil},
	}
	for _, tt := range tests {
		if err := tbl.Add(tt.group, tt.ports); !errors.Is(err, errors.ErrCodeInvalidNetlist) {
			t.Errorf("%s: got %v, want INVALID_NETLIST", tt.name, err)
		}
	}

	if tbl.Len() != 1 {
		t.Errorf("Len = %d after rejected inserts", tbl.Len())
	}
}

func TestTableAddCopiesPorts(t *testing.T) {
	src := []string{"p1", "p2"}
	tbl := New()
	_ = tbl.Add("g", src)
	src[0] = "mutated"

	e, _ := tbl.Get("g")
	if e.Ports[0] != "p1" {
		t.Error("Add should copy the port slice")
	}
}

func TestParseTOMLPreservesOrder(t *testing.T) {
	// Names deliberately out of lexical order: the table must keep
	// definition order, not sort.
	doc := `
[groups]
zeta = ["z1", "z2"]
alpha = ["a1"]
mid = ["m1", "m2", "m3"]
`
	tbl, err := ParseTOML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}

	want := []string{"zeta", "alpha", "mid"}
	entries := tbl.Entries()
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Name, name)
		}
	}

	mid, ok := tbl.Get("mid")
	if !ok || len(mid.Ports) != 3 {
		t.Errorf("Get(mid) = %+v, %v", mid, ok)
	}
}

func TestParseTOMLErrors(t *testing.T) {
	if _, err := ParseTOML([]byte(`[groups]`)); !errors.Is(err, errors.ErrCodeInvalidNetlist) {
		t.Errorf("empty groups: got %v", err)
	}
	if _, err := ParseTOML([]byte(`groups = "not a table"`)); err == nil {
		t.Error("malformed document should fail")
	}
}

func TestParseJSON(t *testing.T) {
	doc := `{"groups": [
		{"name": "b", "ports": ["b1"]},
		{"name": "a", "ports": ["a1", "a2"]}
	]}`
	tbl, err := ParseJSON([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	entries := tbl.Entries()
	if entries[0].Name != "b" || entries[1].Name != "a" {
		t.Errorf("JSON order not preserved: %v", entries)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tbl := New()
	_ = tbl.Add("g1", []string{"p1"})
	_ = tbl.Add("g2", []string{"p2", "p3"})

	data, err := json.Marshal(tbl)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Table
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("Len = %d", got.Len())
	}
	g2, _ := got.Get("g2")
	if len(g2.Ports) != 2 || g2.Ports[1] != "p3" {
		t.Errorf("g2 = %+v", g2)
	}
}

func TestReadUnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader("{}"), "yaml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}
