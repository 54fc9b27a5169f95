// Package app wires the concentrado statistics service together: it loads
// the configuration, initializes logging and OpenTelemetry, builds the
// statistics and health services, mounts the HTTP routes and runs the
// server until SIGINT or SIGTERM.
//
// Usage:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// Initialization errors are returned to the caller; the package never calls
// os.Exit.
package app
