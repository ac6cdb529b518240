package reconcile

import "errors"

var (
	// ErrRoomTypeNotFound is returned by a Store for an unknown room-type code.
	ErrRoomTypeNotFound = errors.New("room type not found")
	// ErrStoreWriteFailed marks a per-event store failure in a Result.
	ErrStoreWriteFailed = errors.New("store write failed")
)
