package mqtt

import "errors"

var (
	// ErrConnectionFailed indicates the initial broker connection failed.
	ErrConnectionFailed = errors.New("mqtt: connection failed")

	// ErrNotConnected indicates an operation requires an active connection.
	ErrNotConnected = errors.New("mqtt: not connected")

	// ErrPublishFailed indicates a publish was not acknowledged in time.
	ErrPublishFailed = errors.New("mqtt: publish failed")

	// ErrSubscribeFailed indicates a subscription could not be established.
	ErrSubscribeFailed = errors.New("mqtt: subscribe failed")
)
