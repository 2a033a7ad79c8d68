package device

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Logger is the minimal logging interface accepted by the Directory.
// Compatible with logging.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger discards all log output. Used until SetLogger is called.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Directory is the authoritative in-memory device store.
//
// It caches all devices from the repository and serves reads from the
// cache. Every mutation goes through one of its methods under the write
// lock, is validated, applied to the cache, and persisted. Callers only
// ever see deep copies.
type Directory struct {
	repo Repository

	mu      sync.RWMutex
	devices map[string]*Device
	// order preserves insertion order for resolver tie-breaking.
	order []string

	logger Logger
}

// NewDirectory creates a Directory and loads all devices from the
// repository into the cache.
func NewDirectory(ctx context.Context, repo Repository) (*Directory, error) {
	d := &Directory{
		repo:    repo,
		devices: make(map[string]*Device),
		logger:  noopLogger{},
	}

	if err := d.reload(ctx); err != nil {
		return nil, fmt.Errorf("loading device directory: %w", err)
	}

	return d, nil
}

// SetLogger attaches a logger. Safe to call at any time.
func (dir *Directory) SetLogger(logger Logger) {
	dir.mu.Lock()
	defer dir.mu.Unlock()
	if logger != nil {
		dir.logger = logger
	}
}

// reload replaces the cache with the repository contents.
func (dir *Directory) reload(ctx context.Context) error {
	devices, err := dir.repo.List(ctx)
	if err != nil {
		return err
	}

	sort.SliceStable(devices, func(i, j int) bool {
		return devices[i].SortOrder < devices[j].SortOrder
	})

	dir.mu.Lock()
	defer dir.mu.Unlock()

	dir.devices = make(map[string]*Device, len(devices))
	dir.order = make([]string, 0, len(devices))
	for _, d := range devices {
		dir.devices[d.ID] = d
		dir.order = append(dir.order, d.ID)
	}

	return nil
}

// Get returns a copy of the device with the given ID.
func (dir *Directory) Get(id string) (*Device, error) {
	dir.mu.RLock()
	defer dir.mu.RUnlock()

	d, ok := dir.devices[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return d.DeepCopy(), nil
}

// List returns copies of all devices in insertion order.
func (dir *Directory) List() []*Device {
	dir.mu.RLock()
	defer dir.mu.RUnlock()

	devices := make([]*Device, 0, len(dir.order))
	for _, id := range dir.order {
		devices = append(devices, dir.devices[id].DeepCopy())
	}
	return devices
}

// Count returns the number of devices in the directory.
func (dir *Directory) Count() int {
	dir.mu.RLock()
	defer dir.mu.RUnlock()
	return len(dir.order)
}

// Create validates and adds a new device, appending it to the iteration
// order. Used by the seed loader and the device API.
func (dir *Directory) Create(ctx context.Context, d *Device) (*Device, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	clone := d.DeepCopy()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now

	dir.mu.Lock()
	defer dir.mu.Unlock()

	if _, exists := dir.devices[clone.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, clone.ID)
	}

	if err := dir.repo.Create(ctx, clone); err != nil {
		return nil, err
	}

	dir.devices[clone.ID] = clone
	dir.order = append(dir.order, clone.ID)

	dir.logger.Debug("device created", "device_id", clone.ID, "name", clone.Name)

	return clone.DeepCopy(), nil
}

// SetStatus turns a device on or off and returns the updated copy.
func (dir *Directory) SetStatus(ctx context.Context, id string, on bool) (*Device, error) {
	return dir.mutate(ctx, id, func(d *Device) error {
		d.Status = on
		return nil
	})
}

// SetTemperature sets the target temperature on a temperature-capable
// device. The value must lie within the device's bounds; otherwise the
// device is left untouched and ErrTemperatureOutOfRange is returned.
func (dir *Directory) SetTemperature(ctx context.Context, id string, temp int) (*Device, error) {
	return dir.mutate(ctx, id, func(d *Device) error {
		if !d.Type.SupportsTemperature() {
			return fmt.Errorf("%w: %s", ErrTemperatureUnsupported, d.Name)
		}
		if d.MinTemp == nil || d.MaxTemp == nil {
			return fmt.Errorf("%w: %s has no configured bounds", ErrTemperatureUnsupported, d.Name)
		}
		if temp < *d.MinTemp || temp > *d.MaxTemp {
			return fmt.Errorf("%w: %d outside [%d, %d]", ErrTemperatureOutOfRange, temp, *d.MinTemp, *d.MaxTemp)
		}
		d.Temperature = &temp
		return nil
	})
}

// SetMode sets the operating mode on a mode-capable device.
// The mode is stored lower-cased, verbatim.
func (dir *Directory) SetMode(ctx context.Context, id string, mode string) (*Device, error) {
	return dir.mutate(ctx, id, func(d *Device) error {
		if !d.Type.SupportsModes() {
			return fmt.Errorf("%w: %s", ErrModeUnsupported, d.Name)
		}
		d.Mode = strings.ToLower(mode)
		return nil
	})
}

// SetEcoMode applies the per-type energy-saving preset.
func (dir *Directory) SetEcoMode(ctx context.Context, id string) (*Device, error) {
	return dir.mutate(ctx, id, func(d *Device) error {
		preset, ok := EcoPresetFor(d.Type)
		if !ok {
			return fmt.Errorf("%w: %s", ErrEcoUnsupported, d.Name)
		}
		temp := preset.Temperature
		d.Temperature = &temp
		if preset.Mode != "" && d.Type.SupportsModes() {
			d.Mode = preset.Mode
		}
		return nil
	})
}

// AddSchedule appends a schedule entry to the device.
func (dir *Directory) AddSchedule(ctx context.Context, id string, s Schedule) (*Device, error) {
	return dir.mutate(ctx, id, func(d *Device) error {
		d.Schedules = append(d.Schedules, s)
		return nil
	})
}

// mutate applies fn to the cached device under the write lock, persists
// the result, and returns a copy. The cache is only updated after the
// repository write succeeds, so observers never see an uncommitted change.
func (dir *Directory) mutate(ctx context.Context, id string, fn func(*Device) error) (*Device, error) {
	dir.mu.Lock()
	defer dir.mu.Unlock()

	current, ok := dir.devices[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := current.DeepCopy()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := dir.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	dir.devices[id] = updated

	dir.logger.Debug("device updated", "device_id", id)

	return updated.DeepCopy(), nil
}
