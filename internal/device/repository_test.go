package device

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hearthhome/hearth-core/internal/infrastructure/database"
)

// openTestRepo creates a SQLite repository with the devices schema.
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
		CREATE TABLE devices (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			type        TEXT NOT NULL,
			room        TEXT NOT NULL,
			status      INTEGER NOT NULL DEFAULT 0,
			value       INTEGER,
			temperature INTEGER,
			min_temp    INTEGER,
			max_temp    INTEGER,
			mode        TEXT,
			schedules   TEXT NOT NULL DEFAULT '[]',
			sort_order  INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`)
	if err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	return NewSQLiteRepository(db)
}

func testDevice() *Device {
	now := time.Now().UTC().Truncate(time.Second)
	return &Device{
		ID:          "ac-1",
		Name:        "Living Room AC",
		Type:        TypeAC,
		Room:        "Living Room",
		Status:      true,
		Temperature: intPtr(22),
		MinTemp:     intPtr(16),
		MaxTemp:     intPtr(30),
		Mode:        "cool",
		Schedules:   []Schedule{{Action: "turn off", Time: "23:00", Enabled: true}},
		SortOrder:   2,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	want := testDevice()
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.Get(ctx, "ac-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.Name != want.Name || got.Type != want.Type || got.Room != want.Room {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if !got.Status {
		t.Error("status not preserved")
	}
	if got.Temperature == nil || *got.Temperature != 22 {
		t.Errorf("temperature = %v, want 22", got.Temperature)
	}
	if got.MinTemp == nil || *got.MinTemp != 16 {
		t.Errorf("min_temp = %v, want 16", got.MinTemp)
	}
	if got.Mode != "cool" {
		t.Errorf("mode = %q, want cool", got.Mode)
	}
	if len(got.Schedules) != 1 || got.Schedules[0].Time != "23:00" {
		t.Errorf("schedules = %+v, want one entry at 23:00", got.Schedules)
	}
}

func TestSQLiteRepository_CreateDuplicate(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testDevice()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := repo.Create(ctx, testDevice())
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate Create() error = %v, want ErrAlreadyExists", err)
	}
}

func TestSQLiteRepository_GetNotFound(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteRepository_Update(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	d := testDevice()
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	d.Status = false
	d.Temperature = intPtr(26)
	d.Mode = "auto"
	if err := repo.Update(ctx, d); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status {
		t.Error("status not updated")
	}
	if got.Temperature == nil || *got.Temperature != 26 {
		t.Errorf("temperature = %v, want 26", got.Temperature)
	}
	if got.Mode != "auto" {
		t.Errorf("mode = %q, want auto", got.Mode)
	}
}

func TestSQLiteRepository_UpdateNotFound(t *testing.T) {
	repo := openTestRepo(t)

	err := repo.Update(context.Background(), testDevice())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteRepository_ListOrder(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i, name := range []string{"Third", "First", "Second"} {
		order := []int{2, 0, 1}[i]
		d := &Device{
			ID: name, Name: name, Type: TypeLight, Room: "Study",
			SortOrder: order, CreatedAt: now, UpdatedAt: now,
		}
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	devices, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(devices) != 3 {
		t.Fatalf("List() returned %d, want 3", len(devices))
	}

	want := []string{"First", "Second", "Third"}
	for i, d := range devices {
		if d.Name != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, d.Name, want[i])
		}
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testDevice()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, "ac-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.Get(ctx, "ac-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, "ac-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteRepository_Count(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}

	if err := repo.Create(ctx, testDevice()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}
