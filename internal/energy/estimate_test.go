package energy

import (
	"testing"

	"github.com/hearthhome/hearth-core/internal/device"
)

func intPtr(v int) *int { return &v }

func TestDeviceLoadKW(t *testing.T) {
	tests := []struct {
		name string
		dev  *device.Device
		want float64
	}{
		{"off light", &device.Device{Type: device.TypeLight, Status: false, Value: intPtr(100)}, 0},
		{"full light", &device.Device{Type: device.TypeLight, Status: true, Value: intPtr(100)}, 0.1},
		{"dimmed light", &device.Device{Type: device.TypeLight, Status: true, Value: intPtr(50)}, 0.05},
		{"light without value", &device.Device{Type: device.TypeLight, Status: true}, 0.1},
		{"fan at speed 3", &device.Device{Type: device.TypeFan, Status: true, Value: intPtr(3)}, 0.05},
		{"running ac", &device.Device{Type: device.TypeAC, Status: true}, 1.5},
		{"running tv", &device.Device{Type: device.TypeTV, Status: true}, 0.1},
		{"nil device", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeviceLoadKW(tt.dev); got != tt.want {
				t.Errorf("DeviceLoadKW() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateLoadKW(t *testing.T) {
	devices := []*device.Device{
		{Type: device.TypeLight, Status: true, Value: intPtr(100)},
		{Type: device.TypeAC, Status: true},
		{Type: device.TypeTV, Status: false},
	}

	if got := EstimateLoadKW(devices); got != 1.6 {
		t.Errorf("EstimateLoadKW() = %v, want 1.6", got)
	}
}
