// Package app provides application initialization and lifecycle management
// for the LinkPulse web service. It wires configuration, logging, the
// parsing pipeline, the dataset store, and the HTTP transport together, and
// handles graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize structured logging
//	3. Create the parser and dataset store
//	4. Set up HTTP handlers and middleware
//	5. Configure and start the HTTP server
//	6. Set up graceful shutdown handlers
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM signals so active requests are
// completed before the server stops and log files are closed.
//
// All initialization errors are returned to the caller; the package does
// not call os.Exit() directly.
package app
