package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops labels.
	LayoutCompactWidth = 80
)

// Form sizing.
const (
	// FieldWidth is the width of each text input.
	FieldWidth = 30

	// FieldCharLimit caps the length of a typed field.
	FieldCharLimit = 200
)

// Timing constants.
const (
	// RefreshInterval is how often the view re-reads the controller while
	// requests are outstanding. It never contacts the remote store.
	RefreshInterval = 250 * time.Millisecond
)
