// Package server implements the HTTP and WebSocket boundary of the chat
// relay.
//
// The implementation is organized into specialized files for configuration,
// clients, routing, and HTTP handlers to keep the codebase maintainable and
// testable as the project grows. All chat semantics live in the chat
// package; this package only moves frames between sockets and the hub.
package server
