package tracking

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const ledger = `repos:
  - path: projects/sample-app
    status: pending
    owner: platform-team
  - path: projects/other-app
    status: pending
`

func writeLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poetry_to_uv_manifest.yaml")
	if err := os.WriteFile(path, []byte(ledger), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUpdateInPlace(t *testing.T) {
	path := writeLedger(t)

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !store.Update("projects/sample-app", StatusMigrated, "converted with standard configuration") {
		t.Fatal("expected matching record to be updated")
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	record := reloaded.Find("projects/sample-app")
	if record == nil {
		t.Fatal("record lost after round trip")
	}
	if record.Status != StatusMigrated {
		t.Errorf("expected status migrated, got %s", record.Status)
	}
	if record.Notes != "converted with standard configuration" {
		t.Errorf("unexpected notes: %s", record.Notes)
	}
	if record.LastUpdated != time.Now().Format("2006-01-02") {
		t.Errorf("unexpected last_updated: %s", record.LastUpdated)
	}

	// Unknown fields and unrelated records survive the rewrite.
	if record.Extra["owner"] != "platform-team" {
		t.Errorf("extra field dropped: %v", record.Extra)
	}
	other := reloaded.Find("projects/other-app")
	if other == nil || other.Status != "pending" {
		t.Errorf("unrelated record modified: %+v", other)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	store, err := Load(writeLedger(t))
	if err != nil {
		t.Fatal(err)
	}
	if store.Update("projects/unknown", StatusMigrated, "n/a") {
		t.Error("expected no match for unknown path")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing ledger")
	}
	if !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("expected NOT_FOUND code, got %v", err)
	}
}
