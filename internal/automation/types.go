package automation

import "time"

// TriggerType classifies what fires a rule.
type TriggerType string

// Known trigger types.
const (
	TriggerTime        TriggerType = "time"
	TriggerDevice      TriggerType = "device"
	TriggerWeather     TriggerType = "weather"
	TriggerTemperature TriggerType = "temperature"
	TriggerMotion      TriggerType = "motion"
	TriggerSchedule    TriggerType = "schedule"
)

// validTriggerTypes is the closed set accepted by validation.
var validTriggerTypes = map[TriggerType]bool{
	TriggerTime:        true,
	TriggerDevice:      true,
	TriggerWeather:     true,
	TriggerTemperature: true,
	TriggerMotion:      true,
	TriggerSchedule:    true,
}

// Trigger is the condition part of a rule. Value is free-form and
// interpreted per type ("07:00" for time, "25" for temperature).
type Trigger struct {
	Type  TriggerType `json:"type"`
	Value string      `json:"value"`
}

// Action verbs a rule may apply to a device.
const (
	ActionOn     = "on"
	ActionOff    = "off"
	ActionToggle = "toggle"
)

// Action is one device operation performed when the rule fires.
type Action struct {
	DeviceID string `json:"device_id"`
	Action   string `json:"action"`
}

// Rule is a stored trigger-to-actions mapping.
// Names are unique case-insensitively; chat commands address rules by name.
type Rule struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Trigger   Trigger   `json:"trigger"`
	Actions   []Action  `json:"actions"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeepCopy returns an independent copy of the rule.
func (r *Rule) DeepCopy() *Rule {
	if r == nil {
		return nil
	}

	clone := *r
	if r.Actions != nil {
		clone.Actions = make([]Action, len(r.Actions))
		copy(clone.Actions, r.Actions)
	}
	return &clone
}

// Validate checks structural invariants. Device existence is the
// caller's concern; the store does not hold a device directory.
func (r *Rule) Validate() error {
	if r.Name == "" {
		return ErrInvalidRule
	}
	if !validTriggerTypes[r.Trigger.Type] {
		return ErrInvalidRule
	}
	if len(r.Actions) == 0 {
		return ErrInvalidRule
	}
	for _, a := range r.Actions {
		if a.DeviceID == "" {
			return ErrInvalidRule
		}
		switch a.Action {
		case ActionOn, ActionOff, ActionToggle:
		default:
			return ErrInvalidRule
		}
	}
	return nil
}
