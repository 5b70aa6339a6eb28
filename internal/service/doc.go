// Package service provides application-level services for authentication,
// task management and user management. Services orchestrate domain entities
// and the store layer, own transaction boundaries, and return sentinel errors
// the API layer maps to HTTP status codes.
package service
