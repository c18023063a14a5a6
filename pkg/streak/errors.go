package streak

import "errors"

var (
	// ErrInvalidDate is returned when a command names a day after today.
	// The command is not applied.
	ErrInvalidDate = errors.New("streak: invalid date")

	// ErrPersistenceRead marks state that could not be read back and was
	// replaced by defaults. It is logged, never returned from a command.
	ErrPersistenceRead = errors.New("streak: persisted state unreadable")

	// ErrPersistenceWrite is returned when a save failed after its retry.
	// The in-memory state already reflects the command.
	ErrPersistenceWrite = errors.New("streak: persist state")

	// ErrClockAnomaly marks a device clock that moved backward. It is logged
	// and the start date is never regressed because of it.
	ErrClockAnomaly = errors.New("streak: clock moved backward")
)
