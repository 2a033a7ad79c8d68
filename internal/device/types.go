package device

import "time"

// Type classifies a device. The set is fixed; free-text references are
// matched against it during resolution.
type Type string

// Known device types.
const (
	TypeLight       Type = "light"
	TypeFan         Type = "fan"
	TypeAC          Type = "ac"
	TypeTV          Type = "tv"
	TypeCurtain     Type = "curtain"
	TypeSpeaker     Type = "speaker"
	TypeSecurity    Type = "security"
	TypeCamera      Type = "camera"
	TypeSensor      Type = "sensor"
	TypeAppliance   Type = "appliance"
	TypeWaterHeater Type = "water_heater"
	TypeFridge      Type = "fridge"
	TypeWineCooler  Type = "wine_cooler"
	TypeFreezer     Type = "freezer"
)

// SupportsTemperature reports whether the type has temperature controls.
func (t Type) SupportsTemperature() bool {
	switch t {
	case TypeAC, TypeWaterHeater, TypeFridge, TypeWineCooler, TypeFreezer:
		return true
	default:
		return false
	}
}

// SupportsModes reports whether the type has an operating mode setting.
// Currently only air conditioners do.
func (t Type) SupportsModes() bool {
	return t == TypeAC
}

// EcoPreset is the per-type energy-saving setting applied by eco mode.
type EcoPreset struct {
	Temperature int
	// Mode is applied only where the type supports modes.
	Mode string
}

// ecoPresets maps temperature-capable types to their eco settings.
var ecoPresets = map[Type]EcoPreset{
	TypeAC:          {Temperature: 24, Mode: "auto"},
	TypeWaterHeater: {Temperature: 38},
	TypeFridge:      {Temperature: 5},
	TypeWineCooler:  {Temperature: 14},
	TypeFreezer:     {Temperature: -18},
}

// EcoPresetFor returns the eco preset for a type, if one exists.
func EcoPresetFor(t Type) (EcoPreset, bool) {
	p, ok := ecoPresets[t]
	return p, ok
}

// Schedule is a stored instruction to perform an action at a wall-clock
// time. Schedules are data entries only; nothing in the core executes
// them in the background.
type Schedule struct {
	Action  string `json:"action" yaml:"action"`
	Time    string `json:"time" yaml:"time"` // HH:MM, 24-hour
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Device is one controllable entry in the directory.
//
// Temperature, MinTemp and MaxTemp are pointers because most device
// types have no thermal state at all. When Temperature is set it always
// lies within [MinTemp, MaxTemp]; the Directory enforces this.
type Device struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   Type   `json:"type"`
	Room   string `json:"room"`
	Status bool   `json:"status"`

	// Value carries an optional brightness/speed/volume percentage.
	Value *int `json:"value,omitempty"`

	Temperature *int   `json:"temperature,omitempty"`
	MinTemp     *int   `json:"min_temp,omitempty"`
	MaxTemp     *int   `json:"max_temp,omitempty"`
	Mode        string `json:"mode,omitempty"`

	Schedules []Schedule `json:"schedules,omitempty"`

	// SortOrder preserves seed insertion order; resolver ties are
	// broken by it.
	SortOrder int `json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeepCopy returns an independent copy of the device.
// Callers receive copies from the Directory so cached state can only be
// changed through its mutation methods.
func (d *Device) DeepCopy() *Device {
	if d == nil {
		return nil
	}

	clone := *d

	clone.Value = copyIntPtr(d.Value)
	clone.Temperature = copyIntPtr(d.Temperature)
	clone.MinTemp = copyIntPtr(d.MinTemp)
	clone.MaxTemp = copyIntPtr(d.MaxTemp)

	if d.Schedules != nil {
		clone.Schedules = make([]Schedule, len(d.Schedules))
		copy(clone.Schedules, d.Schedules)
	}

	return &clone
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Validate checks structural invariants before a device enters the
// directory.
func (d *Device) Validate() error {
	if d.ID == "" || d.Name == "" || d.Type == "" {
		return ErrInvalidDevice
	}

	if d.Temperature != nil {
		if d.MinTemp == nil || d.MaxTemp == nil {
			return ErrInvalidDevice
		}
		if *d.Temperature < *d.MinTemp || *d.Temperature > *d.MaxTemp {
			return ErrTemperatureOutOfRange
		}
	}

	return nil
}
