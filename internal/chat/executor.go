package chat

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hearthhome/hearth-core/internal/automation"
	"github.com/hearthhome/hearth-core/internal/device"
)

// Clause patterns for automation creation. The "when" clause supports
// time and temperature triggers; the "then" clause is a single device
// action.
var (
	reTriggerTime = regexp.MustCompile(`(\d{1,2})[:.](\d{2})(?: ?(?:am|pm))?`)
	reTriggerTemp = regexp.MustCompile(`(-?\d+)(?: ?°?[cf])?`)
	reActionVerb  = regexp.MustCompile(`(turn on|turn off|toggle) (.+)$`)
)

// Outcome bundles a reply with any notifications the command produced.
// Device and Automation are nil unless the command mutated state.
type Outcome struct {
	Result     Result
	Device     *StatusEvent
	Automation *AutomationEvent
}

// Executor applies classified intents against the device directory and
// the automation store, and renders the reply. Every path returns a
// user-facing Result; infrastructure failures are logged and come back
// as a generic apology.
type Executor struct {
	devices   *device.Directory
	rules     *automation.Store
	responder *Responder
	logger    Logger
}

// NewExecutor wires an executor to its stores.
func NewExecutor(devices *device.Directory, rules *automation.Store, responder *Responder) *Executor {
	return &Executor{
		devices:   devices,
		rules:     rules,
		responder: responder,
		logger:    noopLogger{},
	}
}

// SetLogger attaches a logger.
func (e *Executor) SetLogger(logger Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// Execute applies one intent and returns the outcome.
func (e *Executor) Execute(ctx context.Context, in Intent) Outcome {
	switch in.Kind {
	case KindListAutomations:
		return e.listAutomations()
	case KindCreateAutomation:
		return e.createAutomation(ctx, in)
	case KindDeleteAutomation:
		return e.deleteAutomation(ctx, in)
	case KindToggleAutomation:
		return e.toggleAutomation(ctx, in)
	case KindSetTemperature:
		return e.setTemperature(ctx, in)
	case KindSetMode:
		return e.setMode(ctx, in)
	case KindSetEcoMode:
		return e.setEcoMode(ctx, in)
	case KindSchedule:
		return e.schedule(ctx, in)
	case KindTurnOn:
		return e.setStatus(ctx, in.DeviceRef, true)
	case KindTurnOff:
		return e.setStatus(ctx, in.DeviceRef, false)
	case KindStatus:
		return e.status(in.DeviceRef)
	case KindListDevices:
		return Outcome{Result: e.responder.DeviceTour(e.devices.List())}
	case KindHelp:
		return Outcome{Result: e.responder.Help()}
	case KindThanks:
		return Outcome{Result: e.responder.Thanks()}
	case KindAcknowledge:
		return Outcome{Result: e.responder.Acknowledge()}
	case KindGreeting:
		return Outcome{Result: e.responder.Greeting()}
	default:
		return Outcome{Result: e.responder.Unrecognised()}
	}
}

func (e *Executor) listAutomations() Outcome {
	rules := e.rules.List()
	if len(rules) == 0 {
		return Outcome{Result: e.responder.AutomationsEmpty()}
	}

	summaries := make([]AutomationSummary, 0, len(rules))
	for _, r := range rules {
		actions := make([]string, 0, len(r.Actions))
		for _, a := range r.Actions {
			name := a.DeviceID
			if d, err := e.devices.Get(a.DeviceID); err == nil {
				name = d.Name
			}
			actions = append(actions, fmt.Sprintf("%s %s", a.Action, name))
		}
		summaries = append(summaries, AutomationSummary{
			Name:         r.Name,
			TriggerType:  string(r.Trigger.Type),
			TriggerValue: r.Trigger.Value,
			Actions:      actions,
			IsActive:     r.IsActive,
		})
	}

	return Outcome{Result: e.responder.AutomationList(summaries)}
}

func (e *Executor) createAutomation(ctx context.Context, in Intent) Outcome {
	trigger, ok := parseTrigger(in.TriggerClause)
	if !ok {
		return Outcome{Result: e.responder.TriggerClauseInvalid()}
	}

	verb, deviceRef, ok := parseActionClause(in.ActionClause)
	if !ok {
		return Outcome{Result: e.responder.ActionClauseInvalid()}
	}

	dev, err := e.devices.Resolve(deviceRef)
	if err != nil {
		return Outcome{Result: e.responder.GenericDeviceNotFound(deviceRef)}
	}

	rule, err := e.rules.Create(ctx, &automation.Rule{
		Name:     in.AutomationName,
		Trigger:  trigger,
		Actions:  []automation.Action{{DeviceID: dev.ID, Action: verb}},
		IsActive: true,
	})
	switch {
	case errors.Is(err, automation.ErrDuplicateName):
		return Outcome{Result: e.responder.DuplicateAutomation(in.AutomationName)}
	case err != nil:
		e.logger.Error("creating automation", "name", in.AutomationName, "error", err)
		return Outcome{Result: e.responder.InternalError()}
	}

	return Outcome{
		Result:     e.responder.CreateAutomationSuccess(in.AutomationName, in.TriggerClause, in.ActionClause),
		Automation: automationEvent(rule, "created"),
	}
}

func (e *Executor) deleteAutomation(ctx context.Context, in Intent) Outcome {
	rule, err := e.rules.GetByName(in.AutomationName)
	if err != nil {
		return Outcome{Result: e.responder.AutomationNotFound(in.AutomationName)}
	}

	if err := e.rules.Delete(ctx, rule.ID); err != nil {
		e.logger.Error("deleting automation", "automation_id", rule.ID, "error", err)
		return Outcome{Result: e.responder.InternalError()}
	}

	return Outcome{
		Result:     e.responder.DeleteAutomationSuccess(in.AutomationName),
		Automation: automationEvent(rule, "deleted"),
	}
}

func (e *Executor) toggleAutomation(ctx context.Context, in Intent) Outcome {
	rule, err := e.rules.GetByName(in.AutomationName)
	if err != nil {
		return Outcome{Result: e.responder.AutomationNotFound(in.AutomationName)}
	}

	updated, err := e.rules.Toggle(ctx, rule.ID)
	if err != nil {
		e.logger.Error("toggling automation", "automation_id", rule.ID, "error", err)
		return Outcome{Result: e.responder.InternalError()}
	}

	return Outcome{
		Result:     e.responder.ToggleAutomationSuccess(in.AutomationName, updated.IsActive),
		Automation: automationEvent(updated, "toggled"),
	}
}

func (e *Executor) setTemperature(ctx context.Context, in Intent) Outcome {
	dev, err := e.devices.Resolve(in.DeviceRef)
	if err != nil {
		return Outcome{Result: e.responder.ACNotFound(in.DeviceRef)}
	}

	updated, err := e.devices.SetTemperature(ctx, dev.ID, in.Temperature)
	switch {
	case errors.Is(err, device.ErrTemperatureUnsupported):
		return Outcome{Result: e.responder.TempUnsupported(dev.Name)}
	case errors.Is(err, device.ErrTemperatureOutOfRange):
		if dev.MinTemp == nil || dev.MaxTemp == nil {
			return Outcome{Result: e.responder.TempUnsupported(dev.Name)}
		}
		return Outcome{Result: e.responder.TempOutOfRange(dev.Name, in.Temperature, *dev.MinTemp, *dev.MaxTemp)}
	case err != nil:
		e.logger.Error("setting temperature", "device_id", dev.ID, "error", err)
		return Outcome{Result: e.responder.InternalError()}
	}

	return Outcome{
		Result: e.responder.TempSuccess(updated.Name, in.Temperature),
		Device: thermalEvent(updated),
	}
}

func (e *Executor) setMode(ctx context.Context, in Intent) Outcome {
	dev, err := e.devices.Resolve(in.DeviceRef)
	if err != nil {
		return Outcome{Result: e.responder.ACNotFound(in.DeviceRef)}
	}

	updated, err := e.devices.SetMode(ctx, dev.ID, in.Mode)
	switch {
	case errors.Is(err, device.ErrModeUnsupported):
		return Outcome{Result: e.responder.ModeUnsupported(dev.Name)}
	case err != nil:
		e.logger.Error("setting mode", "device_id", dev.ID, "error", err)
		return Outcome{Result: e.responder.InternalError()}
	}

	return Outcome{
		Result: e.responder.ModeSuccess(updated.Name, in.Mode),
		Device: thermalEvent(updated),
	}
}

func (e *Executor) setEcoMode(ctx context.Context, in Intent) Outcome {
	dev, err := e.devices.Resolve(in.DeviceRef)
	if err != nil {
		return Outcome{Result: e.responder.GenericDeviceNotFound(in.DeviceRef)}
	}

	updated, err := e.devices.SetEcoMode(ctx, dev.ID)
	switch {
	case errors.Is(err, device.ErrEcoUnsupported):
		return Outcome{Result: e.responder.EcoUnsupported(dev.Name)}
	case err != nil:
		e.logger.Error("setting eco mode", "device_id", dev.ID, "error", err)
		return Outcome{Result: e.responder.InternalError()}
	}

	return Outcome{
		Result: e.responder.EcoSuccess(updated.Name),
		Device: thermalEvent(updated),
	}
}

func (e *Executor) schedule(ctx context.Context, in Intent) Outcome {
	dev, err := e.devices.Resolve(in.DeviceRef)
	if err != nil {
		return Outcome{Result: e.responder.GenericDeviceNotFound(in.DeviceRef)}
	}

	updated, err := e.devices.AddSchedule(ctx, dev.ID, device.Schedule{
		Action:  in.ScheduleAction,
		Time:    in.ScheduleTime,
		Enabled: true,
	})
	if err != nil {
		e.logger.Error("adding schedule", "device_id", dev.ID, "error", err)
		return Outcome{Result: e.responder.InternalError()}
	}

	return Outcome{
		Result: e.responder.ScheduleSuccess(updated.Name, in.ScheduleAction, in.ScheduleTime),
		Device: statusEvent(updated),
	}
}

func (e *Executor) setStatus(ctx context.Context, ref string, on bool) Outcome {
	dev, err := e.devices.Resolve(ref)
	if err != nil {
		return Outcome{Result: e.responder.DeviceNotFound(ref)}
	}

	updated, err := e.devices.SetStatus(ctx, dev.ID, on)
	if err != nil {
		e.logger.Error("setting status", "device_id", dev.ID, "error", err)
		return Outcome{Result: e.responder.InternalError()}
	}

	action := "off"
	if on {
		action = "on"
	}
	return Outcome{
		Result: e.responder.TurnSuccess(updated.Name, action),
		Device: statusEvent(updated),
	}
}

func (e *Executor) status(ref string) Outcome {
	if ref == "" {
		return Outcome{Result: e.responder.StatusAskDevice()}
	}

	dev, err := e.devices.Resolve(ref)
	if err != nil {
		return Outcome{Result: e.responder.StatusNotFound(ref)}
	}

	if !dev.Type.SupportsTemperature() {
		return Outcome{Result: e.responder.StatusSimple(dev.Name, dev.Status)}
	}

	running := "currently off"
	if dev.Status && dev.Temperature != nil {
		if dev.Type == device.TypeAC {
			running = fmt.Sprintf("running in %s mode at %d°C", dev.Mode, *dev.Temperature)
		} else {
			running = fmt.Sprintf("maintaining %d°C", *dev.Temperature)
		}
	}

	note := ""
	if len(dev.Schedules) > 0 {
		next := dev.Schedules[0]
		note = fmt.Sprintf("(Next scheduled action: turn %s at %s)", next.Action, next.Time)
	}

	icon := "🌡️"
	if dev.Type == device.TypeAC {
		icon = "❄️"
	}

	return Outcome{Result: e.responder.StatusThermal(dev.Name, running, note, icon)}
}

// parseTrigger turns a "when" clause into a trigger. Time clauses win
// over temperature clauses when both keywords appear.
func parseTrigger(clause string) (automation.Trigger, bool) {
	switch {
	case strings.Contains(clause, "time"):
		g := reTriggerTime.FindStringSubmatch(clause)
		if g == nil {
			return automation.Trigger{}, false
		}
		hour := g[1]
		if len(hour) == 1 {
			hour = "0" + hour
		}
		return automation.Trigger{Type: automation.TriggerTime, Value: hour + ":" + g[2]}, true

	case strings.Contains(clause, "temperature"):
		g := reTriggerTemp.FindStringSubmatch(clause)
		if g == nil {
			return automation.Trigger{}, false
		}
		return automation.Trigger{Type: automation.TriggerTemperature, Value: g[1]}, true

	default:
		return automation.Trigger{}, false
	}
}

// parseActionClause turns a "then" clause into a canonical action verb
// and a device reference.
func parseActionClause(clause string) (verb, deviceRef string, ok bool) {
	g := reActionVerb.FindStringSubmatch(clause)
	if g == nil {
		return "", "", false
	}

	switch g[1] {
	case "turn on":
		verb = automation.ActionOn
	case "turn off":
		verb = automation.ActionOff
	default:
		verb = automation.ActionToggle
	}
	return verb, strings.TrimSpace(g[2]), true
}

func statusEvent(d *device.Device) *StatusEvent {
	return &StatusEvent{
		DeviceID:  d.ID,
		Status:    d.Status,
		Timestamp: time.Now().UTC(),
	}
}

func thermalEvent(d *device.Device) *StatusEvent {
	ev := statusEvent(d)
	ev.Temperature = d.Temperature
	ev.Mode = d.Mode
	return ev
}

func automationEvent(r *automation.Rule, change string) *AutomationEvent {
	return &AutomationEvent{
		AutomationID: r.ID,
		Name:         r.Name,
		Change:       change,
		IsActive:     r.IsActive,
		Timestamp:    time.Now().UTC(),
	}
}
