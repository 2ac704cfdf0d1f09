// Package app wires the dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Resolve dataset paths and log them
//	2. Initialize tracing (no-op unless an exporter is configured)
//	3. Create the metrics registry and the services
//	4. Set up middleware, handlers and the HTTP server
//
// Configuration loading and logger setup happen in the caller so that the CLI
// can apply its flag overrides first.
//
// # Usage
//
//	cfg, _ := config.Load()
//	logger, _ := infrastructure.InitializeLogger(cfg.Logging)
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
package app
