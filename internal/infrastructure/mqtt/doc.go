// Package mqtt provides the optional MQTT event relay for Hearth Core.
//
// When enabled, device status events are mirrored onto an MQTT broker so
// external integrations can react to state changes without holding a
// WebSocket connection. The wrapper adds connection state tracking,
// automatic re-subscription after reconnects, and panic-safe handlers on
// top of paho.mqtt.golang.
package mqtt
