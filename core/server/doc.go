// Package server holds the HTTP server configuration.
//
// The main application entry point handles server startup; this package only
// defines the configuration structure (port and API key) embedded by the
// core/config package.
package server
