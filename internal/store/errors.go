package store

import "errors"

var (
	ErrSlotUnavailable   = errors.New("slot unavailable")
	ErrUserAlreadyBooked = errors.New("user already booked")
	ErrNotFound          = errors.New("not found")
)
