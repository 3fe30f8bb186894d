// Package server provides the HTTP server for the pass signing service.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// Routes:
//   - common infrastructure handlers (health, version)
//   - POST /default-doc - signed download URLs for the default aircraft documents
//   - POST /sign - Apple Wallet boarding pass bundles
//
// middleware is in internal/server/middleware
package server
