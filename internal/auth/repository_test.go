package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hearthhome/hearth-core/internal/infrastructure/database"
)

func openTestRepo(t *testing.T) *SQLiteUserRepository {
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
		CREATE TABLE users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE COLLATE NOCASE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		)`)
	if err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	return NewUserRepository(db)
}

func TestSQLiteUserRepository_RoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	user := &User{Username: "alex", PasswordHash: "$argon2id$stub", Role: RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Username != "alex" || got.Role != RoleUser {
		t.Errorf("got %+v", got)
	}

	// Username lookup is case-insensitive.
	got, err = repo.GetByUsername(ctx, "ALEX")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("id = %q, want %q", got.ID, user.ID)
	}
}

func TestSQLiteUserRepository_DuplicateUsername(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &User{Username: "alex", PasswordHash: "h", Role: RoleUser}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := repo.Create(ctx, &User{Username: "Alex", PasswordHash: "h", Role: RoleUser})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("Create() error = %v, want ErrUsernameExists", err)
	}
}

func TestSQLiteUserRepository_InvalidUser(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name string
		user *User
	}{
		{"bad username", &User{Username: "has spaces", PasswordHash: "h", Role: RoleUser}},
		{"empty hash", &User{Username: "alex", Role: RoleUser}},
		{"unknown role", &User{Username: "alex", PasswordHash: "h", Role: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.Create(ctx, tt.user); !errors.Is(err, ErrInvalidUser) {
				t.Errorf("Create() error = %v, want ErrInvalidUser", err)
			}
		})
	}
}

func TestSQLiteUserRepository_UpdatePassword(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	user := &User{Username: "alex", PasswordHash: "old", Role: RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.UpdatePassword(ctx, user.ID, "new"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	got, _ := repo.GetByID(ctx, user.ID)
	if got.PasswordHash != "new" {
		t.Errorf("hash = %q, want new", got.PasswordHash)
	}

	if err := repo.UpdatePassword(ctx, "missing", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdatePassword() error = %v, want ErrUserNotFound", err)
	}
}

func TestSQLiteUserRepository_DeleteAndCount(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	user := &User{Username: "alex", PasswordHash: "h", Role: RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second Delete() error = %v, want ErrUserNotFound", err)
	}

	count, _ = repo.Count(ctx)
	if count != 0 {
		t.Errorf("Count() = %d after delete, want 0", count)
	}
}
