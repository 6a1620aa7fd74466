// Package config loads pantry's TOML configuration.
//
// # Discovery
//
// Load reads the file given on the command line, or
// $XDG_CONFIG_HOME/pantry/config.toml when none is given. A missing file is
// not an error: every field has a default, and empty values in an existing
// file fall back to the same defaults.
//
// # Format
//
//	demo_config = "~/sites/cookanything/config.json"
//	log_file = "~/.local/state/pantry/pantry.log"
//	log_level = "info"
//
//	[source]
//	url = "https://script.google.com/macros/s/<deployment>/exec"
//	base_url = "https://cookanythingkitchen.com/"
//	timeout = "15s"
//
//	[cache]
//	backend = "file"     # or "sqlite"
//	path = "~/.cache/pantry"
//	ttl = "30m"
//	read_enabled = false
//
//	[display]
//	page_size = 24
//	debounce = "300ms"
//	scroll_threshold = 10
//
//	[server]
//	listen = "127.0.0.1:8080"
//
// Durations use time.ParseDuration syntax. Paths accept a leading "~".
//
// # Cache reads
//
// read_enabled defaults to false. In that state the cache is written after
// every successful fetch but never consulted, so each load goes to the
// network. Set it to true to serve fetches from the cache while the slot is
// younger than ttl.
//
// # Errors
//
// Load fails on unreadable files, invalid TOML, unparsable durations, an
// unknown cache backend and an unknown log level. These are the only fatal
// errors pantry has.
package config
