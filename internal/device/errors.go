package device

import "errors"

var (
	// ErrNotFound indicates no device matched the given ID or reference.
	ErrNotFound = errors.New("device: not found")

	// ErrAlreadyExists indicates a device with the same ID already exists.
	ErrAlreadyExists = errors.New("device: already exists")

	// ErrInvalidDevice indicates the device failed validation.
	ErrInvalidDevice = errors.New("device: invalid device")

	// ErrTemperatureUnsupported indicates the device type has no
	// temperature controls.
	ErrTemperatureUnsupported = errors.New("device: temperature control not supported")

	// ErrTemperatureOutOfRange indicates the requested temperature lies
	// outside the device's safe bounds.
	ErrTemperatureOutOfRange = errors.New("device: temperature out of range")

	// ErrModeUnsupported indicates the device type has no mode setting.
	ErrModeUnsupported = errors.New("device: mode control not supported")

	// ErrEcoUnsupported indicates the device type has no eco preset.
	ErrEcoUnsupported = errors.New("device: eco mode not supported")
)
