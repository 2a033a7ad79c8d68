// Package api provides the HTTP REST API and WebSocket server for
// Hearth Core.
//
// It exposes the chat endpoint, device and automation reads, automation
// management, authentication and energy telemetry to user interfaces,
// and broadcasts device status changes over WebSocket.
//
// The server follows the same lifecycle pattern as the infrastructure
// clients:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
