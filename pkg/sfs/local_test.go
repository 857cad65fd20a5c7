package sfs

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalListAndStat(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("aa"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create fixture dir: %v", err)
	}

	l := NewLocal(root)

	infos, lErr := l.List(".")
	if lErr != nil {
		t.Fatalf("List failed: %v", lErr)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(infos))
	}

	fi, sErr := l.Stat("a.txt")
	if sErr != nil {
		t.Fatalf("Stat failed: %v", sErr)
	}
	if fi.IsDir() || fi.Size() != 2 {
		t.Errorf("Unexpected file info: dir=%v size=%d", fi.IsDir(), fi.Size())
	}
}

func TestLocalExists(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("aa"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	l := NewLocal(root)

	exists, err := l.Exists("a.txt")
	if err != nil || !exists {
		t.Errorf("Exists(a.txt) = (%v, %v), want (true, nil)", exists, err)
	}
	exists, err = l.Exists("missing.txt")
	if err != nil || exists {
		t.Errorf("Exists(missing.txt) = (%v, %v), want (false, nil)", exists, err)
	}
}

func TestLocalReadWriteRemove(t *testing.T) {
	l := NewLocal(t.TempDir())

	w, cErr := l.Create("sub.txt")
	if cErr != nil {
		t.Fatalf("Create failed: %v", cErr)
	}
	if _, err := w.Write([]byte("content")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, oErr := l.Open("sub.txt")
	if oErr != nil {
		t.Fatalf("Open failed: %v", oErr)
	}
	data, rErr := io.ReadAll(r)
	if rErr != nil {
		t.Fatalf("Read failed: %v", rErr)
	}
	_ = r.Close()
	if string(data) != "content" {
		t.Errorf("Read back %q, want %q", data, "content")
	}

	if err := l.Remove("sub.txt"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if exists, _ := l.Exists("sub.txt"); exists {
		t.Error("File still exists after Remove")
	}
}

func TestLocalMkdirResolvesSlashPaths(t *testing.T) {
	root := t.TempDir()
	l := NewLocal(root)

	if err := l.Mkdir("sub"); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := l.Mkdir("sub/deep"); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	fi, err := os.Stat(filepath.Join(root, "sub", "deep"))
	if err != nil || !fi.IsDir() {
		t.Errorf("Expected directory sub/deep, got (%v, %v)", fi, err)
	}
}
