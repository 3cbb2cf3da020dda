package decorator

// Error codes for decorator configuration faults.
const (
	// CodeInvalidRepetitions is returned when a repeat timer is built with a non-positive count.
	CodeInvalidRepetitions = "INVALID_REPETITIONS"

	// CodeInvalidSlot is returned when a capability slot index is out of range.
	CodeInvalidSlot = "INVALID_SLOT"
)
