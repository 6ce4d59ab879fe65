package storage

import (
	"bytes"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return s
}

func TestPutGetDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("run/transcript.txt", []byte("bonjour")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := s.Get("run/transcript.txt")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !bytes.Equal(got, []byte("bonjour")) {
		t.Errorf("Get() = %q", got)
	}

	exists, err := s.Exists("run/transcript.txt")
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v", exists, err)
	}

	if err := s.Delete("run/transcript.txt"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	exists, err = s.Exists("run/transcript.txt")
	if err != nil || exists {
		t.Errorf("Exists() after delete = %v, %v", exists, err)
	}
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete("absent.txt"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	s := newTestStore(t)
	for _, key := range []string{"../outside.txt", "a/../../b", "/etc/passwd"} {
		if _, err := s.Path(key); err == nil {
			t.Errorf("Path(%q) accepted, want rejection", key)
		}
	}
}

func TestList(t *testing.T) {
	s := newTestStore(t)
	for _, key := range []string{"runs/a.txt", "runs/b.txt", "other/c.txt"} {
		if err := s.Put(key, []byte("x")); err != nil {
			t.Fatalf("Put(%q) error: %v", key, err)
		}
	}

	infos, err := s.List("runs/")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List() returned %d objects, want 2", len(infos))
	}
	if infos[0].Key != "runs/a.txt" || infos[1].Key != "runs/b.txt" {
		t.Errorf("keys = %s, %s", infos[0].Key, infos[1].Key)
	}
}
