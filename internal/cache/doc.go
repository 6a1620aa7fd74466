// Package cache persists the last fetched recipe list in a single slot.
//
// The slot is always written after a successful fetch. Reads are governed by
// Policy: with ReadEnabled false (the default configuration) Get is a constant
// miss, which keeps every load going to the network. Storage errors of any
// kind are logged and swallowed.
package cache
