package events

import (
	"strings"

	"hotel-inventory/core/utils"
)

// Field synonyms, in lookup order. Different upstream producers spell the
// same field differently.
var (
	codeKeys  = []string{"roomTypeCode", "RoomTypeId", "code"}
	countKeys = []string{"count", "AvailableCount", "quantity"}
	rateKeys  = []string{"rate", "Rate", "BaseRate", "Price", "Amount"}

	reservationCodeKeys   = []string{"room_type_code", "room_type"}
	reservationCountKeys  = []string{"room_count"}
	reservationStatusKeys = []string{"booking_status", "status"}
)

const reservationEventType = "RESERVATION"

// Reservation statuses after normalizeStatus.
var (
	consumeStatuses = map[string]struct{}{
		"BOOKED":    {},
		"CONFIRMED": {},
		"HOLD":      {},
	}
	releaseStatuses = map[string]struct{}{
		"CANCELLED": {},
		"CANCELED":  {},
		"NO_SHOW":   {},
	}
)

// Classify maps one event payload to its variant. Rules are tried in order:
//  1. a room-type code with a count and/or rate is an AbsoluteUpdate;
//  2. a RESERVATION event with a booked/confirmed/hold status consumes rooms;
//  3. a RESERVATION event with a cancelled/no-show status releases rooms;
//  4. anything else is Unrecognized.
func Classify(payload map[string]any) Classification {
	if payload == nil {
		return Unrecognized{Reason: "empty payload"}
	}

	if code := firstString(payload, codeKeys); code != "" {
		count, hasCount := firstCount(payload, countKeys)
		rate, hasRate := firstRate(payload, rateKeys)
		if hasCount || hasRate {
			update := AbsoluteUpdate{Code: code}
			if hasCount {
				update.Count = &count
			}
			if hasRate {
				update.Rate = &rate
			}
			return update
		}
	}

	if normalizeStatus(utils.ToString(payload["event_type"])) != reservationEventType {
		return Unrecognized{Reason: "no room type update or reservation fields"}
	}

	reservation, ok := payload["reservation"].(map[string]any)
	if !ok {
		return Unrecognized{Reason: "reservation event without reservation object"}
	}

	code := firstString(reservation, reservationCodeKeys)
	if code == "" {
		return Unrecognized{Reason: "reservation without room type code"}
	}

	rooms := 1
	if n, ok := firstCount(reservation, reservationCountKeys); ok && n > 0 {
		rooms = n
	}

	status := normalizeStatus(firstString(reservation, reservationStatusKeys))
	if _, ok := consumeStatuses[status]; ok {
		return ReservationDelta{Code: code, Rooms: rooms, Direction: DirectionConsume}
	}
	if _, ok := releaseStatuses[status]; ok {
		return ReservationDelta{Code: code, Rooms: rooms, Direction: DirectionRelease}
	}

	if status == "" {
		return Unrecognized{Reason: "reservation without status"}
	}
	return Unrecognized{Reason: "reservation status " + status + " does not change availability"}
}

// present reports whether key holds a usable value. Zero is usable.
func present(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func firstString(m map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := present(m, key); ok {
			if _, isObject := v.(map[string]any); isObject {
				continue
			}
			return strings.TrimSpace(utils.ToString(v))
		}
	}
	return ""
}

// firstCount returns the first key that parses as a count, clamped at zero.
func firstCount(m map[string]any, keys []string) (int, bool) {
	for _, key := range keys {
		v, ok := present(m, key)
		if !ok {
			continue
		}
		if n, ok := utils.ParseInt(v); ok {
			return max(n, 0), true
		}
	}
	return 0, false
}

// firstRate returns the first key that parses as a positive amount.
func firstRate(m map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		v, ok := present(m, key)
		if !ok {
			continue
		}
		if f, ok := utils.ParseFloat(v); ok && f > 0 {
			return f, true
		}
	}
	return 0, false
}

// normalizeStatus upper-cases s and folds spaces and hyphens to underscores,
// so "No Show", "no-show" and "NO_SHOW" compare equal.
func normalizeStatus(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
