package automation

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hearthhome/hearth-core/internal/infrastructure/database"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // test cleanup

	_, err = db.ExecContext(context.Background(), `
		CREATE TABLE automations (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			trigger_type  TEXT NOT NULL,
			trigger_value TEXT NOT NULL,
			actions       TEXT NOT NULL DEFAULT '[]',
			is_active     INTEGER NOT NULL DEFAULT 1,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		)`)
	if err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	return NewSQLiteRepository(db)
}

func storedRule(id, name string) *Rule {
	now := time.Now().UTC().Truncate(time.Second)
	return &Rule{
		ID:        id,
		Name:      name,
		Trigger:   Trigger{Type: TriggerTemperature, Value: "25"},
		Actions:   []Action{{DeviceID: "3", Action: ActionOn}},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	want := storedRule("r-1", "cool down")
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.Get(ctx, "r-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.Name != want.Name {
		t.Errorf("name = %q, want %q", got.Name, want.Name)
	}
	if got.Trigger.Type != TriggerTemperature || got.Trigger.Value != "25" {
		t.Errorf("trigger = %+v, want temperature 25", got.Trigger)
	}
	if len(got.Actions) != 1 || got.Actions[0].DeviceID != "3" || got.Actions[0].Action != ActionOn {
		t.Errorf("actions = %+v, want one 'on' action for device 3", got.Actions)
	}
	if !got.IsActive {
		t.Error("is_active not preserved")
	}
}

func TestSQLiteRepository_UpdateAndDelete(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	rule := storedRule("r-1", "cool down")
	if err := repo.Create(ctx, rule); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rule.IsActive = false
	rule.Name = "cool down v2"
	if err := repo.Update(ctx, rule); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.Get(ctx, "r-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.IsActive {
		t.Error("is_active not updated")
	}
	if got.Name != "cool down v2" {
		t.Errorf("name = %q, want %q", got.Name, "cool down v2")
	}

	if err := repo.Delete(ctx, "r-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, "r-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Update(ctx, rule); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() after delete error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteRepository_ListOrder(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, name := range []string{"first", "second", "third"} {
		r := storedRule(name, name)
		r.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	rules, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("List() returned %d, want 3", len(rules))
	}

	want := []string{"first", "second", "third"}
	for i, r := range rules {
		if r.Name != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, r.Name, want[i])
		}
	}
}
