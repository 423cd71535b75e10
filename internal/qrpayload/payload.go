package qrpayload

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrMalformedPayload is returned when a scanned string cannot be decoded
// into a payload. The caller records it as invalid_qr without booking or
// event references, since none could be extracted.
var ErrMalformedPayload = errors.New("malformed qr payload")

// Payload is the structured, signed data encoded into a ticket's QR symbol.
// Timestamp is epoch milliseconds at issuance.
type Payload struct {
	BookingID uuid.UUID `json:"bookingId"`
	EventID   uuid.UUID `json:"eventId"`
	Hash      string    `json:"hash"`
	Timestamp int64     `json:"timestamp"`
	Signature string    `json:"signature"`
}

// signatureLength is the number of hex characters of the digest embedded as
// the signature fragment.
const signatureLength = 16

func digestHex(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

func signingInput(bookingID, eventID uuid.UUID, instant int64) string {
	return fmt.Sprintf("%s:%s:%d", bookingID.String(), eventID.String(), instant)
}

// Encode builds a fresh payload for a booking. The content hash is an
// unkeyed digest over bookingId:eventId:issuanceInstant and the signature
// fragment is its first 16 hex characters. No secret key is involved,
// matching the scheme this service inherited; see DESIGN.md before relying
// on it for authenticity rather than tamper evidence.
func Encode(bookingID, eventID uuid.UUID) *Payload {
	timestamp := time.Now().UnixMilli()
	hash := digestHex(signingInput(bookingID, eventID, timestamp))
	signature := hash[:signatureLength]

	return &Payload{
		BookingID: bookingID,
		EventID:   eventID,
		Hash:      hash,
		Timestamp: timestamp,
		Signature: signature,
	}
}

// String serializes the payload to the transport form embedded in the QR
// symbol.
func (p *Payload) String() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// IssuedAt returns the issuance timestamp as a time.
func (p *Payload) IssuedAt() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// Decode parses a scanned string back into a payload. Any structural
// failure, including missing fields, yields ErrMalformedPayload.
func Decode(raw string) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, ErrMalformedPayload
	}

	if p.BookingID == uuid.Nil || p.EventID == uuid.Nil {
		return nil, ErrMalformedPayload
	}
	if p.Hash == "" || p.Signature == "" || p.Timestamp == 0 {
		return nil, ErrMalformedPayload
	}

	return &p, nil
}
