package events

// Kind names a classification variant.
type Kind string

const (
	KindAbsoluteUpdate   Kind = "absolute_update"
	KindReservationDelta Kind = "reservation_delta"
	KindUnrecognized     Kind = "unrecognized"
)

// Direction says whether a reservation takes rooms off sale or puts them back.
type Direction string

const (
	DirectionConsume Direction = "consume"
	DirectionRelease Direction = "release"
)

// Classification is one of AbsoluteUpdate, ReservationDelta or Unrecognized.
type Classification interface {
	Kind() Kind
	// RoomTypeCode is empty for Unrecognized.
	RoomTypeCode() string
}

// AbsoluteUpdate replaces a room type's count and/or rate outright.
// At least one of Count and Rate is set.
type AbsoluteUpdate struct {
	Code  string
	Count *int
	Rate  *float64
}

func (AbsoluteUpdate) Kind() Kind             { return KindAbsoluteUpdate }
func (u AbsoluteUpdate) RoomTypeCode() string { return u.Code }

// ReservationDelta is a booking or cancellation of Rooms rooms of one type.
type ReservationDelta struct {
	Code      string
	Rooms     int
	Direction Direction
}

func (ReservationDelta) Kind() Kind             { return KindReservationDelta }
func (d ReservationDelta) RoomTypeCode() string { return d.Code }

// Delta is the signed change to the available count.
func (d ReservationDelta) Delta() int {
	if d.Direction == DirectionConsume {
		return -d.Rooms
	}
	return d.Rooms
}

// Unrecognized is an event the poller does not act on. It is still
// acknowledged so the upstream stops redelivering it.
type Unrecognized struct {
	Reason string
}

func (Unrecognized) Kind() Kind           { return KindUnrecognized }
func (Unrecognized) RoomTypeCode() string { return "" }
