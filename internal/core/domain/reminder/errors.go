package reminder

import "errors"

var (
	ErrReminderDoesNotExist    = errors.New("reminder does not exist")
	ErrReminderAlreadyExists   = errors.New("reminder already exists")
	ErrReminderVersionConflict = errors.New("reminder has been modified concurrently")
	ErrReminderInvalidRepeat   = errors.New(
		"repeat requires positive interval and count that fit into one day",
	)
)
