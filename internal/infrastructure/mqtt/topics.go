package mqtt

// Topic layout for the Hearth event relay.
//
//	hearth/system/status          - retained service online/offline status
//	hearth/events/device-status   - device state change events (default)
const (
	// TopicSystemStatus carries the retained service status payload.
	TopicSystemStatus = "hearth/system/status"

	// TopicDeviceStatus is the default topic for device status events.
	// Overridable via mqtt.topic in config.
	TopicDeviceStatus = "hearth/events/device-status"
)
