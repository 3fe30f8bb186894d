// Package handlers provides general infrastructure HTTP handlers
// (health, version).
//
// The boarding-pass and default-document endpoints live in
// app/internal/boarding/handlers.
package handlers
