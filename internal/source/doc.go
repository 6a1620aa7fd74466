// Package source fetches the recipe list from the remote spreadsheet endpoint.
//
// Client performs a single JSON GET per call, with no retry. Fetcher wraps a
// RecordSource with the cache check, normalization and cache write, and turns
// every failure into an empty list plus a user-facing message delivered
// through a Notifier.
package source
