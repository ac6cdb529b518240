package upstream

import (
	"encoding/json"
	"time"
)

// InboundEvent is one message delivered by the upstream stream.
type InboundEvent struct {
	// ReceiptToken acknowledges this delivery. Redeliveries may reuse it.
	ReceiptToken string `json:"receipt_token"`
	// Payload is the event body: the envelope's payload object, or the
	// envelope itself when it carries no nested payload.
	Payload map[string]any `json:"payload"`
	// ReceivedAt is when the poll returned the event.
	ReceivedAt time.Time `json:"received_at"`
	// Raw is the envelope exactly as received.
	Raw json.RawMessage `json:"-"`
}

// receiptKeys are the envelope fields the token has been seen under.
var receiptKeys = []string{"receiptHandle", "receipt_handle", "receiptToken"}
