// Package logtail reads the tail of pantry's slog text log.
//
// Read keeps a ring buffer of maxLines entries and scans the file once, so
// memory stays O(maxLines) regardless of file size. Records below the
// requested level are skipped along with their continuation lines.
//
//	lines, err := logtail.Read(cfg.LogFile, 200, slog.LevelWarn)
//
// A missing log file is not an error; Read returns no lines.
package logtail
