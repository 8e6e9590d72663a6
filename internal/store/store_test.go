package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/GregMSThompson/pbx-dashboard/internal/errs"
)

func exerciseBackend(t *testing.T, b Backend, prefix string) {
	t.Helper()
	ctx := context.Background()
	uid1, uid2 := prefix+"uid1", prefix+"uid2"

	_, err := b.Get(ctx, uid1, "dashboard-customization")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for missing key, got %T: %v", err, err)
	}

	if err := b.Set(ctx, uid1, "dashboard-customization", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if err := b.Set(ctx, uid1, "dashboard-customization", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	got, err := b.Get(ctx, uid1, "dashboard-customization")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Fatalf("expected overwritten value, got %s", got)
	}

	// namespaces are isolated
	if _, err := b.Get(ctx, uid2, "dashboard-customization"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError in other namespace, got %v", err)
	}

	kv := Namespace(b, uid2)
	if err := kv.Set(ctx, "widget-minimized-kpiCards", []byte("true")); err != nil {
		t.Fatalf("namespaced set error: %v", err)
	}
	got, err = b.Get(ctx, uid2, "widget-minimized-kpiCards")
	if err != nil || string(got) != "true" {
		t.Fatalf("namespaced value not visible through backend: %s, %v", got, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseBackend(t, NewMemoryStore(), "")
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	buf := []byte("true")
	if err := s.Set(ctx, "ns", "k", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'X'
	got, _ := s.Get(ctx, "ns", "k")
	if string(got) != "true" {
		t.Fatalf("store aliased caller buffer: %s", got)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	exerciseBackend(t, s, "")
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/prefs/dashboard.db"
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := s.Set(ctx, "uid1", "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer s.Close()
	got, err := s.Get(ctx, "uid1", "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("expected value after reopen, got %q, %v", got, err)
	}
}

func TestPreferenceStoreWithEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	defer client.Close()

	exerciseBackend(t, NewPreferenceStore(client), uuid.NewString()+"-")
}
