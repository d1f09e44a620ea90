package kb

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRegistry_Order(t *testing.T) {
	r := NewRegistry(
		Profile{Name: "ProjectArchitect"},
		Profile{Name: "Athena"},
		Profile{Name: "Developer"},
	)
	if diff := cmp.Diff([]string{"ProjectArchitect", "Athena", "Developer"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	for i, p := range r.Profiles() {
		if p.Index != i {
			t.Errorf("%s Index = %d, want %d", p.Name, p.Index, i)
		}
	}
}

func TestNewRegistry_DuplicateReplacesInPlace(t *testing.T) {
	r := NewRegistry(
		Profile{Name: "Athena", Memory: "one"},
		Profile{Name: "Developer"},
		Profile{Name: "ATHENA", Memory: "two"},
	)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	p, ok := r.Lookup("athena")
	if !ok || p.Memory != "two" || p.Index != 0 {
		t.Errorf("Lookup(athena) = %+v, %v", p, ok)
	}
	if _, ok := r.Lookup("Athena"); !ok {
		t.Error("old spelling should still resolve case-insensitively")
	}
	if got := r.Names()[0]; got != "ATHENA" {
		t.Errorf("Names()[0] = %q, want the later spelling", got)
	}
}

func TestRegistry_Sorted(t *testing.T) {
	r := NewRegistry(Profile{Name: "beta"}, Profile{Name: "Alpha"}, Profile{Name: "gamma"})
	var got []string
	for _, p := range r.Sorted() {
		got = append(got, p.Name)
	}
	if diff := cmp.Diff([]string{"Alpha", "beta", "gamma"}, got); diff != "" {
		t.Errorf("Sorted() mismatch (-want +got):\n%s", diff)
	}
	if r.Names()[0] != "beta" {
		t.Error("Sorted() must not reorder the registry")
	}
}

func TestRegistry_ProfilesIsCopy(t *testing.T) {
	r := NewRegistry(Profile{Name: "Athena", Memory: "m"})
	ps := r.Profiles()
	ps[0].Memory = "changed"
	if p, _ := r.Lookup("Athena"); p.Memory != "m" {
		t.Error("mutating Profiles() result changed the registry")
	}
}

func TestRegistry_Nil(t *testing.T) {
	var r *Registry
	if r.Len() != 0 || r.Names() != nil {
		t.Error("nil registry should be empty")
	}
	if _, ok := r.Lookup("x"); ok {
		t.Error("nil registry lookup should fail")
	}
}
