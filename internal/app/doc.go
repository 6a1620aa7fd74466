// Package app is pantry's composition root.
//
// Each command loads the TOML config, builds a structured logger, opens the
// cache backend, creates the recipe source client and wraps both in a
// source.Fetcher. From there:
//
//   - Run starts the Bubble Tea browser on a controller.Controller.
//     Logs go to the configured file since the terminal belongs to the UI.
//   - Serve starts the HTML server with Prometheus metrics.
//   - Export fetches, filters and sorts once and writes CSV or XLSX.
//   - Logs prints the tail of the log file.
//
// A cache that fails to open is replaced by cache.Discard with a warning,
// and a missing or invalid source URL becomes a source that always fails,
// so both surfaces still render the failure notice instead of exiting.
// Only configuration errors are fatal.
package app
