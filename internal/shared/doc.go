// Package shared holds helpers used across the dashboard packages that belong
// to no single layer.
//
// The testutil subpackage provides a buffered slog handler so tests can assert
// on log output:
//
//	logger, handler := testutil.NewTestLogger(t)
//	svc := services.NewHealthService("test", paths, logger)
//	svc.HealthCheck(ctx)
//	testutil.AssertLogContains(t, handler, slog.LevelDebug, "HealthCheck: completed")
//
// Nothing here may import other internal packages.
package shared
