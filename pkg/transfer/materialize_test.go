package transfer

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/mtth/igloo/pkg/cerr"
)

func TestMaterializeFlat(t *testing.T) {
	m := newMemFS(false)

	dest, err := Materialize(m, "sub/deep/b.txt", false)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if dest != "b.txt" {
		t.Errorf("dest = %q, want %q", dest, "b.txt")
	}
	if len(m.dirs) != 1 {
		t.Errorf("Flattening should create no directories, got %v", m.dirs)
	}
}

func TestMaterializePreserve(t *testing.T) {
	m := newMemFS(true)

	dest, err := Materialize(m, "sub/deep/b.txt", true)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if dest != "sub/deep/b.txt" {
		t.Errorf("dest = %q, want %q", dest, "sub/deep/b.txt")
	}
	// The full chain exists and is a directory at every level
	for _, dir := range []string{"sub", "sub/deep"} {
		fi, sErr := m.Stat(dir)
		if sErr != nil || !fi.IsDir() {
			t.Errorf("Expected directory %q after materialization", dir)
		}
	}
}

func TestMaterializePreserveIdempotent(t *testing.T) {
	m := newMemFS(false)
	m.addFile("sub/existing.txt", []byte("x"))

	// "sub" already exists, recreating it must not be an error
	dest, err := Materialize(m, "sub/b.txt", true)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if dest != "sub/b.txt" {
		t.Errorf("dest = %q, want %q", dest, "sub/b.txt")
	}
}

func TestMaterializeHierarchyConflict(t *testing.T) {
	m := newMemFS(false)
	m.addFile("sub", []byte("a file, not a directory"))

	_, err := Materialize(m, "sub/b.txt", true)
	if err == nil {
		t.Fatal("Expected a conflict error")
	}
	if !cerr.IsKind(err, cerr.HierarchyConflict) {
		t.Errorf("Error kind = %q, want %q", cerr.KindOf(err), cerr.HierarchyConflict)
	}
}

func TestMaterializeProbeFailure(t *testing.T) {
	m := newMemFS(true)
	m.statErrs["sub"] = &fs.PathError{Op: "stat", Path: "sub", Err: errors.New("permission denied")}

	_, err := Materialize(m, "sub/b.txt", true)
	if err == nil {
		t.Fatal("Expected a probe error")
	}
	if !cerr.IsKind(err, cerr.RemoteError) {
		t.Errorf("Error kind = %q, want %q", cerr.KindOf(err), cerr.RemoteError)
	}
}
