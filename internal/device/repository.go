package device

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hearthhome/hearth-core/internal/infrastructure/database"
)

// Repository persists devices. The Directory is the only expected caller;
// everything else goes through its cache.
type Repository interface {
	Create(ctx context.Context, d *Device) error
	Get(ctx context.Context, id string) (*Device, error)
	List(ctx context.Context) ([]*Device, error)
	Update(ctx context.Context, d *Device) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository on the shared SQLite database.
type SQLiteRepository struct {
	db *database.DB
}

// NewSQLiteRepository creates a repository backed by the given database.
func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const deviceColumns = `id, name, type, room, status, value, temperature, min_temp, max_temp, mode, schedules, sort_order, created_at, updated_at`

// Create inserts a new device.
func (r *SQLiteRepository) Create(ctx context.Context, d *Device) error {
	if err := d.Validate(); err != nil {
		return err
	}

	schedules, err := marshalSchedules(d.Schedules)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO devices (`+deviceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, string(d.Type), d.Room, boolToInt(d.Status),
		nullableInt(d.Value), nullableInt(d.Temperature),
		nullableInt(d.MinTemp), nullableInt(d.MaxTemp),
		nullableString(d.Mode), schedules, d.SortOrder,
		d.CreatedAt.UTC().Format(time.RFC3339),
		d.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, d.ID)
		}
		return fmt.Errorf("inserting device: %w", err)
	}

	return nil
}

// Get retrieves a device by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Device, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE id = ?`, id)

	d, err := scanDevice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying device: %w", err)
	}

	return d, nil
}

// List returns all devices in seed order.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Device, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+deviceColumns+` FROM devices ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []*Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		devices = append(devices, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}

	return devices, nil
}

// Update persists the full device record.
func (r *SQLiteRepository) Update(ctx context.Context, d *Device) error {
	if err := d.Validate(); err != nil {
		return err
	}

	schedules, err := marshalSchedules(d.Schedules)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE devices
		SET name = ?, type = ?, room = ?, status = ?, value = ?,
		    temperature = ?, min_temp = ?, max_temp = ?, mode = ?,
		    schedules = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		d.Name, string(d.Type), d.Room, boolToInt(d.Status),
		nullableInt(d.Value), nullableInt(d.Temperature),
		nullableInt(d.MinTemp), nullableInt(d.MaxTemp),
		nullableString(d.Mode), schedules, d.SortOrder,
		d.UpdatedAt.UTC().Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating device: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, d.ID)
	}

	return nil
}

// Delete removes a device by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting device: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

// Count returns the number of stored devices.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM devices`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting devices: %w", err)
	}
	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDevice(s scanner) (*Device, error) {
	var (
		d          Device
		typ        string
		status     int
		value      sql.NullInt64
		temp       sql.NullInt64
		minTemp    sql.NullInt64
		maxTemp    sql.NullInt64
		mode       sql.NullString
		schedules  string
		createdAt  string
		updatedAt  string
	)

	err := s.Scan(&d.ID, &d.Name, &typ, &d.Room, &status, &value,
		&temp, &minTemp, &maxTemp, &mode, &schedules, &d.SortOrder,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	d.Type = Type(typ)
	d.Status = status != 0
	d.Value = intPtrFromNull(value)
	d.Temperature = intPtrFromNull(temp)
	d.MinTemp = intPtrFromNull(minTemp)
	d.MaxTemp = intPtrFromNull(maxTemp)
	if mode.Valid {
		d.Mode = mode.String
	}

	if schedules != "" {
		if err := json.Unmarshal([]byte(schedules), &d.Schedules); err != nil {
			return nil, fmt.Errorf("decoding schedules: %w", err)
		}
	}

	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	d.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &d, nil
}

func marshalSchedules(schedules []Schedule) (string, error) {
	if schedules == nil {
		return "[]", nil
	}
	data, err := json.Marshal(schedules)
	if err != nil {
		return "", fmt.Errorf("encoding schedules: %w", err)
	}
	return string(data), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func intPtrFromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// isUniqueViolation detects SQLite constraint failures without depending
// on driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
