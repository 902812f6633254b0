package core

import "errors"

// Error taxonomy (§7). Only these two are ever surfaced past the core;
// everything else either degrades gracefully or yields an absent result.
var (
	// ErrUnknownFile is returned by position queries and reads against a
	// filename that was never opened and is not present on disk.
	ErrUnknownFile = errors.New("texls: unknown file")
	// ErrRangeMismatch is returned when an incremental edit's declared
	// rangeLength disagrees with the indexed length of that range.
	ErrRangeMismatch = errors.New("texls: range length mismatch")
)
