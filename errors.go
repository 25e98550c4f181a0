package pie

import "errors"

// Sentinel errors returned by Reload and the layout solver. All are detected
// before any wedge state is mutated, so a failed reload leaves the chart
// exactly as it was.
var (
	// ErrInvalidInput indicates a negative value in the supplied sequence.
	ErrInvalidInput = errors.New("pie: negative slice value")

	// ErrZeroTotal indicates a non-empty value sequence summing to zero.
	// Angular proportions are undefined for such input, so it is rejected
	// rather than silently miscomputed.
	ErrZeroTotal = errors.New("pie: value sequence sums to zero")

	// ErrUnsupportedReconciliation indicates the slice count changed by more
	// than one in a single reload. Use a Feed to serialize larger jumps into
	// single-step reloads.
	ErrUnsupportedReconciliation = errors.New("pie: slice count changed by more than one")

	// ErrReloadInFlight indicates Reload was called while a previous batch's
	// animations were still running. Enable QueueReloads to coalesce instead
	// of rejecting.
	ErrReloadInFlight = errors.New("pie: reload already in flight")

	// ErrInvalidDuration indicates a non-positive animation duration.
	ErrInvalidDuration = errors.New("pie: animation duration must be positive")
)
