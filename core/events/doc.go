// Package events classifies upstream event payloads.
//
// Payloads are loosely shaped: producers spell the same field several ways
// (roomTypeCode, RoomTypeId or code; count, AvailableCount or quantity; rate,
// Rate, BaseRate, Price or Amount). Classify resolves the synonyms and returns
// one of three variants:
//
//   - AbsoluteUpdate: a new count and/or rate for a room type.
//   - ReservationDelta: a booking (consume) or cancellation (release) of rooms.
//   - Unrecognized: nothing to apply; the event is acknowledged and skipped.
//
// The synonym lists and the rule order live in classify.go and are the single
// place to change when a producer adds a new spelling.
package events
