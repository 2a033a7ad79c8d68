package energy

import "github.com/hearthhome/hearth-core/internal/device"

// Per-type draw constants for the dashboard estimate, in kW.
const (
	lightFullLoadKW = 0.1 // at full brightness
	fanFullLoadKW   = 0.05
	acLoadKW        = 1.5
	defaultLoadKW   = 0.1

	fanMaxSpeed = 3
)

// DeviceLoadKW estimates the draw of a single device. Devices that are
// off draw nothing; lights and fans scale with their brightness or
// speed value, defaulting to full when unset.
func DeviceLoadKW(d *device.Device) float64 {
	if d == nil || !d.Status {
		return 0
	}

	switch d.Type {
	case device.TypeLight:
		pct := 100.0
		if d.Value != nil {
			pct = float64(*d.Value)
		}
		return pct / 100 * lightFullLoadKW
	case device.TypeFan:
		speed := float64(fanMaxSpeed)
		if d.Value != nil {
			speed = float64(*d.Value)
		}
		return speed / fanMaxSpeed * fanFullLoadKW
	case device.TypeAC:
		return acLoadKW
	default:
		return defaultLoadKW
	}
}

// EstimateLoadKW sums the estimated draw of all active devices.
func EstimateLoadKW(devices []*device.Device) float64 {
	var total float64
	for _, d := range devices {
		total += DeviceLoadKW(d)
	}
	return round2(total)
}
