// Package api implements the HTTP transport layer: request/response models,
// handlers for the auth, task and user endpoints, and the error mapping that
// turns service errors into HTTP status codes without leaking internals.
package api
