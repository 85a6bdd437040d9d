// Package server holds configuration for the HTTP surface of the service.
//
// The server itself is assembled in the start command; this package only
// carries the settings (listen port, API key) so that core packages do
// not depend on the web framework.
package server
