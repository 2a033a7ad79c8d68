package influxdb

import "errors"

var (
	// ErrDisabled indicates InfluxDB is disabled in configuration.
	ErrDisabled = errors.New("influxdb: disabled in configuration")

	// ErrConnectionFailed indicates the server could not be reached.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrNotConnected indicates an operation requires an active connection.
	ErrNotConnected = errors.New("influxdb: not connected")
)
