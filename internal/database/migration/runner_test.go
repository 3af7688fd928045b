package migration

import (
	"testing"
	"testing/fstest"

	"jobboard/migrations"
)

func TestLoad_OrdersAndSkipsUnrelated(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("SELECT 1;\n")},
		"README.md":      {Data: []byte("docs")},
		"embed.go":       {Data: []byte("package migrations")},
	}
	migs, err := Load(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migs) != 2 || migs[0].Version != 1 || migs[1].Name != "second" {
		t.Fatalf("unexpected migrations: %+v", migs)
	}
	if migs[0].SQL != "SELECT 1;" {
		t.Fatalf("expected trimmed sql, got %q", migs[0].SQL)
	}
}

func TestLoad_RejectsDuplicateAndEmpty(t *testing.T) {
	if _, err := Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	}); err == nil {
		t.Fatalf("expected duplicate version error")
	}
	if _, err := Load(fstest.MapFS{"V1__a.sql": {Data: []byte("  ")}}); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestPending(t *testing.T) {
	migs, err := Load(fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V2__b.sql": {Data: []byte("SELECT 2;")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	pending, err := Pending(migs, map[int64]string{1: migs[0].Checksum})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].Version != 2 {
		t.Fatalf("expected only V2 pending, got %+v", pending)
	}

	if _, err := Pending(migs, map[int64]string{1: "changed"}); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migs, err := Load(migrations.FS)
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if len(migs) < 3 || migs[0].Name != "jobs" {
		t.Fatalf("unexpected embedded set: %+v", migs)
	}
}
