package automation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hearthhome/hearth-core/internal/infrastructure/database"
)

// Repository persists automation rules.
type Repository interface {
	Create(ctx context.Context, r *Rule) error
	Get(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context) ([]*Rule, error)
	Update(ctx context.Context, r *Rule) error
	Delete(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository on the shared SQLite database.
type SQLiteRepository struct {
	db *database.DB
}

// NewSQLiteRepository creates a repository backed by the given database.
func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const ruleColumns = `id, name, trigger_type, trigger_value, actions, is_active, created_at, updated_at`

// Create inserts a new rule.
func (r *SQLiteRepository) Create(ctx context.Context, rule *Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	actions, err := json.Marshal(rule.Actions)
	if err != nil {
		return fmt.Errorf("encoding actions: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO automations (`+ruleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.Name, string(rule.Trigger.Type), rule.Trigger.Value,
		string(actions), boolToInt(rule.IsActive),
		rule.CreatedAt.UTC().Format(time.RFC3339),
		rule.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting automation: %w", err)
	}

	return nil
}

// Get retrieves a rule by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Rule, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+ruleColumns+` FROM automations WHERE id = ?`, id)

	rule, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying automation: %w", err)
	}

	return rule, nil
}

// List returns all rules in creation order.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Rule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ruleColumns+` FROM automations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying automations: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning automation: %w", err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating automations: %w", err)
	}

	return rules, nil
}

// Update persists the full rule record.
func (r *SQLiteRepository) Update(ctx context.Context, rule *Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	actions, err := json.Marshal(rule.Actions)
	if err != nil {
		return fmt.Errorf("encoding actions: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE automations
		SET name = ?, trigger_type = ?, trigger_value = ?, actions = ?,
		    is_active = ?, updated_at = ?
		WHERE id = ?`,
		rule.Name, string(rule.Trigger.Type), rule.Trigger.Value,
		string(actions), boolToInt(rule.IsActive),
		rule.UpdatedAt.UTC().Format(time.RFC3339),
		rule.ID,
	)
	if err != nil {
		return fmt.Errorf("updating automation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, rule.ID)
	}

	return nil
}

// Delete removes a rule by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM automations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting automation: %w", err)
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

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(s scanner) (*Rule, error) {
	var (
		rule        Rule
		triggerType string
		actions     string
		isActive    int
		createdAt   string
		updatedAt   string
	)

	err := s.Scan(&rule.ID, &rule.Name, &triggerType, &rule.Trigger.Value,
		&actions, &isActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rule.Trigger.Type = TriggerType(triggerType)
	rule.IsActive = isActive != 0

	if err := json.Unmarshal([]byte(actions), &rule.Actions); err != nil {
		return nil, fmt.Errorf("decoding actions: %w", err)
	}

	rule.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	rule.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &rule, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
