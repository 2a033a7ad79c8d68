package automation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger is the minimal logging interface accepted by the Store.
// Compatible with logging.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Store is the authoritative set of automation rules.
//
// Like the device directory, it caches repository contents and serves
// reads from memory; mutations run under the write lock and hit the
// repository before the cache. Callers receive deep copies only.
type Store struct {
	repo Repository

	mu    sync.RWMutex
	rules map[string]*Rule
	// order preserves creation order for listing.
	order []string

	logger Logger
}

// NewStore creates a Store and loads all rules from the repository.
func NewStore(ctx context.Context, repo Repository) (*Store, error) {
	s := &Store{
		repo:   repo,
		rules:  make(map[string]*Rule),
		logger: noopLogger{},
	}

	rules, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading automation store: %w", err)
	}

	for _, r := range rules {
		s.rules[r.ID] = r
		s.order = append(s.order, r.ID)
	}

	return s, nil
}

// SetLogger attaches a logger. Safe to call at any time.
func (s *Store) SetLogger(logger Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if logger != nil {
		s.logger = logger
	}
}

// List returns copies of all rules in creation order.
func (s *Store) List() []*Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := make([]*Rule, 0, len(s.order))
	for _, id := range s.order {
		rules = append(rules, s.rules[id].DeepCopy())
	}
	return rules
}

// Count returns the number of stored rules.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Get returns a copy of the rule with the given ID.
func (s *Store) Get(id string) (*Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.DeepCopy(), nil
}

// GetByName returns the rule whose name matches case-insensitively.
func (s *Store) GetByName(name string) (*Rule, error) {
	query := strings.ToLower(strings.TrimSpace(name))

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		r := s.rules[id]
		if strings.ToLower(r.Name) == query {
			return r.DeepCopy(), nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Create validates and stores a new rule. A missing ID is assigned.
// Rule names are unique case-insensitively.
func (s *Store) Create(ctx context.Context, r *Rule) (*Rule, error) {
	clone := r.DeepCopy()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now

	if err := clone.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lowered := strings.ToLower(clone.Name)
	for _, id := range s.order {
		if strings.ToLower(s.rules[id].Name) == lowered {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, clone.Name)
		}
	}

	if err := s.repo.Create(ctx, clone); err != nil {
		return nil, err
	}

	s.rules[clone.ID] = clone
	s.order = append(s.order, clone.ID)

	s.logger.Info("automation created", "automation_id", clone.ID, "name", clone.Name)

	return clone.DeepCopy(), nil
}

// Delete removes a rule by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	delete(s.rules, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Info("automation deleted", "automation_id", id)

	return nil
}

// Toggle flips the rule's active flag and returns the updated copy.
func (s *Store) Toggle(ctx context.Context, id string) (*Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.rules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := current.DeepCopy()
	updated.IsActive = !updated.IsActive
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.rules[id] = updated

	s.logger.Info("automation toggled", "automation_id", id, "is_active", updated.IsActive)

	return updated.DeepCopy(), nil
}

// Update replaces the stored rule with the given record.
func (s *Store) Update(ctx context.Context, r *Rule) (*Rule, error) {
	updated := r.DeepCopy()
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[updated.ID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, updated.ID)
	}

	lowered := strings.ToLower(updated.Name)
	for _, id := range s.order {
		if id != updated.ID && strings.ToLower(s.rules[id].Name) == lowered {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, updated.Name)
		}
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.rules[updated.ID] = updated

	return updated.DeepCopy(), nil
}
