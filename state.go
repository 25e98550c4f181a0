package pie

// State represents the current state of a Chart.
type State int32

const (
	// StateEmpty indicates the chart holds no wedges.
	StateEmpty State = iota

	// StateSettled indicates the chart holds wedges and no batch is in
	// flight; geometry matches the committed model values exactly.
	StateSettled

	// StateAnimating indicates a reload batch is in flight. Interaction and
	// further reloads are deferred until every transition completes.
	StateAnimating
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateSettled:
		return "settled"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}
