package chat

import "time"

// IntentKind enumerates the commands the interpreter understands.
type IntentKind int

// Intent kinds, ordered roughly by matching priority.
const (
	KindUnrecognized IntentKind = iota
	KindListAutomations
	KindCreateAutomation
	KindDeleteAutomation
	KindToggleAutomation
	KindSetTemperature
	KindSetMode
	KindSetEcoMode
	KindSchedule
	KindTurnOn
	KindTurnOff
	KindHelp
	KindThanks
	KindAcknowledge
	KindGreeting
	KindStatus
	KindListDevices
)

// String returns the intent kind name for logging.
func (k IntentKind) String() string {
	switch k {
	case KindListAutomations:
		return "list_automations"
	case KindCreateAutomation:
		return "create_automation"
	case KindDeleteAutomation:
		return "delete_automation"
	case KindToggleAutomation:
		return "toggle_automation"
	case KindSetTemperature:
		return "set_temperature"
	case KindSetMode:
		return "set_mode"
	case KindSetEcoMode:
		return "set_eco_mode"
	case KindSchedule:
		return "schedule"
	case KindTurnOn:
		return "turn_on"
	case KindTurnOff:
		return "turn_off"
	case KindHelp:
		return "help"
	case KindThanks:
		return "thanks"
	case KindAcknowledge:
		return "acknowledge"
	case KindGreeting:
		return "greeting"
	case KindStatus:
		return "status"
	case KindListDevices:
		return "list_devices"
	default:
		return "unrecognized"
	}
}

// Intent is the transient classification of one utterance: a kind plus
// the slots extracted from it. Slots are captured verbatim and passed
// uninterpreted to the resolver; numeric slots are already parsed.
type Intent struct {
	Kind IntentKind

	// DeviceRef is the free-text device reference, where captured.
	DeviceRef string

	// AutomationName addresses a rule for delete/toggle.
	AutomationName string

	// TriggerClause and ActionClause carry the raw "when"/"then" parts
	// of a create-automation command for the executor to parse.
	TriggerClause string
	ActionClause  string

	// Temperature is the requested target for SetTemperature.
	Temperature int

	// Mode is the requested operating mode for SetMode.
	Mode string

	// ScheduleAction and ScheduleTime carry a parsed schedule request.
	ScheduleAction string
	ScheduleTime   string // HH:MM, 24-hour
}

// ResultType tags a Result for the UI layer.
type ResultType string

// Result types.
const (
	TypeInfo     ResultType = "info"
	TypeSuccess  ResultType = "success"
	TypeError    ResultType = "error"
	TypeGreeting ResultType = "greeting"
)

// Result is what the caller gets back for an utterance.
type Result struct {
	Text string     `json:"response"`
	Type ResultType `json:"type"`
}

// StatusEvent is the state-change notification broadcast to observers
// after a successful device mutation. Temperature and Mode are present
// only for thermal changes.
type StatusEvent struct {
	DeviceID    string    `json:"deviceId"`
	Status      bool      `json:"status"`
	Temperature *int      `json:"temperature,omitempty"`
	Mode        string    `json:"mode,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// AutomationEvent is broadcast after a successful automation mutation.
type AutomationEvent struct {
	AutomationID string    `json:"automationId"`
	Name         string    `json:"name"`
	Change       string    `json:"change"` // created, deleted, toggled
	IsActive     bool      `json:"isActive"`
	Timestamp    time.Time `json:"timestamp"`
}

// Notifier receives state-change events after successful mutations.
//
// Calls happen on the command-processing path and must not block;
// implementations deliver best-effort with no acknowledgment.
type Notifier interface {
	NotifyDeviceStatus(event StatusEvent)
	NotifyAutomationChange(event AutomationEvent)
}

// Logger is the minimal logging interface accepted by the dispatcher.
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
