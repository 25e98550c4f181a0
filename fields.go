package pie

import "github.com/zoobzio/capitan"

// Field keys for chart events.
var (
	// KeyKind is the reconciliation kind of a batch: add, update, remove,
	// or noop.
	KeyKind = capitan.NewStringKey("kind")

	// KeySlices is the slice count a batch targets.
	KeySlices = capitan.NewIntKey("slices")

	// KeyIndex is a wedge index.
	KeyIndex = capitan.NewIntKey("index")

	// KeyPrevious is the previously selected index, -1 for none.
	KeyPrevious = capitan.NewIntKey("previous")

	// KeyNext is the newly selected index, -1 for none.
	KeyNext = capitan.NewIntKey("next")

	// KeyError is the error message when an operation is rejected.
	KeyError = capitan.NewStringKey("error")

	// KeyDuration is the configured animation duration of a batch.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeyFrames is the number of sampler ticks a batch ran for.
	KeyFrames = capitan.NewIntKey("frames")

	// KeySteps is the number of single-step reloads a feed dataset was
	// serialized into.
	KeySteps = capitan.NewIntKey("steps")

	// KeyDebounce is the configured feed debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeyPath is the filesystem path of a dataset source.
	KeyPath = capitan.NewStringKey("path")
)
