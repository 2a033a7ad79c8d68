package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/hearthhome/hearth-core/internal/automation"
	"github.com/hearthhome/hearth-core/internal/device"
)

// deviceRepo is an in-memory device.Repository for pipeline tests.
type deviceRepo struct {
	devices map[string]*device.Device
	order   []string
}

func newDeviceRepo() *deviceRepo {
	return &deviceRepo{devices: make(map[string]*device.Device)}
}

func (m *deviceRepo) Create(_ context.Context, d *device.Device) error {
	m.devices[d.ID] = d.DeepCopy()
	m.order = append(m.order, d.ID)
	return nil
}

func (m *deviceRepo) Get(_ context.Context, id string) (*device.Device, error) {
	d, ok := m.devices[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", device.ErrNotFound, id)
	}
	return d.DeepCopy(), nil
}

func (m *deviceRepo) List(_ context.Context) ([]*device.Device, error) {
	devices := make([]*device.Device, 0, len(m.order))
	for _, id := range m.order {
		devices = append(devices, m.devices[id].DeepCopy())
	}
	return devices, nil
}

func (m *deviceRepo) Update(_ context.Context, d *device.Device) error {
	if _, ok := m.devices[d.ID]; !ok {
		return fmt.Errorf("%w: %s", device.ErrNotFound, d.ID)
	}
	m.devices[d.ID] = d.DeepCopy()
	return nil
}

func (m *deviceRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.devices[id]; !ok {
		return fmt.Errorf("%w: %s", device.ErrNotFound, id)
	}
	delete(m.devices, id)
	return nil
}

func (m *deviceRepo) Count(_ context.Context) (int, error) {
	return len(m.order), nil
}

// ruleRepo is an in-memory automation.Repository.
type ruleRepo struct {
	rules map[string]*automation.Rule
	order []string
}

func newRuleRepo() *ruleRepo {
	return &ruleRepo{rules: make(map[string]*automation.Rule)}
}

func (m *ruleRepo) Create(_ context.Context, r *automation.Rule) error {
	m.rules[r.ID] = r.DeepCopy()
	m.order = append(m.order, r.ID)
	return nil
}

func (m *ruleRepo) Get(_ context.Context, id string) (*automation.Rule, error) {
	r, ok := m.rules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", automation.ErrNotFound, id)
	}
	return r.DeepCopy(), nil
}

func (m *ruleRepo) List(_ context.Context) ([]*automation.Rule, error) {
	rules := make([]*automation.Rule, 0, len(m.order))
	for _, id := range m.order {
		rules = append(rules, m.rules[id].DeepCopy())
	}
	return rules, nil
}

func (m *ruleRepo) Update(_ context.Context, r *automation.Rule) error {
	if _, ok := m.rules[r.ID]; !ok {
		return fmt.Errorf("%w: %s", automation.ErrNotFound, r.ID)
	}
	m.rules[r.ID] = r.DeepCopy()
	return nil
}

func (m *ruleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.rules[id]; !ok {
		return fmt.Errorf("%w: %s", automation.ErrNotFound, id)
	}
	delete(m.rules, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }

// testDevices mirrors a small household: two lights, an AC with thermal
// state, a water heater and a TV.
func testDevices() []*device.Device {
	return []*device.Device{
		{ID: "1", Name: "Living Room Light", Type: device.TypeLight, Room: "Living Room", SortOrder: 0},
		{ID: "2", Name: "Bedroom Light", Type: device.TypeLight, Room: "Bedroom", SortOrder: 1},
		{
			ID: "3", Name: "Living Room AC", Type: device.TypeAC, Room: "Living Room",
			Status: true, Temperature: intPtr(22), MinTemp: intPtr(16), MaxTemp: intPtr(30),
			Mode: "cool", SortOrder: 2,
		},
		{
			ID: "4", Name: "Water Heater", Type: device.TypeWaterHeater, Room: "Bathroom",
			Temperature: intPtr(45), MinTemp: intPtr(30), MaxTemp: intPtr(60), SortOrder: 3,
		},
		{ID: "5", Name: "Smart TV", Type: device.TypeTV, Room: "Living Room", SortOrder: 4},
	}
}

// newTestExecutor builds a directory, a rule store and an executor with
// deterministic phrase selection.
func newTestExecutor(t *testing.T) (*Executor, *device.Directory, *automation.Store) {
	t.Helper()

	ctx := context.Background()
	repo := newDeviceRepo()
	for _, d := range testDevices() {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("seeding device %s: %v", d.ID, err)
		}
	}

	dir, err := device.NewDirectory(ctx, repo)
	if err != nil {
		t.Fatalf("NewDirectory() error = %v", err)
	}

	store, err := automation.NewStore(ctx, newRuleRepo())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	return NewExecutor(dir, store, NewResponder(FixedSelector(0))), dir, store
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *device.Directory, *automation.Store) {
	t.Helper()

	exec, dir, store := newTestExecutor(t)
	return NewDispatcher(NewMatcher(), exec), dir, store
}

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	deviceEvents     []StatusEvent
	automationEvents []AutomationEvent
}

func (n *recordingNotifier) NotifyDeviceStatus(ev StatusEvent) {
	n.deviceEvents = append(n.deviceEvents, ev)
}

func (n *recordingNotifier) NotifyAutomationChange(ev AutomationEvent) {
	n.automationEvents = append(n.automationEvents, ev)
}
