package qrpayload

import (
	"crypto/hmac"
	"time"
)

// MaxPayloadAge bounds exposure from leaked or forwarded codes without
// requiring revocation lists.
const MaxPayloadAge = 30 * 24 * time.Hour

// Verifier decides whether a decoded payload is acceptable before any
// business state is touched.
type Verifier struct {
	MaxAge time.Duration

	now func() time.Time
}

func NewVerifier() *Verifier {
	return &Verifier{
		MaxAge: MaxPayloadAge,
		now:    time.Now,
	}
}

// VerifySignature recomputes the unkeyed digest from the scanned payload's
// own fields and checks both the content hash and the embedded signature
// fragment against it; at issuance the fragment is the digest's prefix, so
// a correctly issued payload satisfies both. This gives tamper evidence
// over the signed fields, not authenticity: anyone who knows the scheme can
// mint a matching fragment.
func (v *Verifier) VerifySignature(p *Payload) bool {
	if len(p.Signature) < signatureLength {
		return false
	}

	expected := digestHex(signingInput(p.BookingID, p.EventID, p.Timestamp))
	if !hmac.Equal([]byte(expected), []byte(p.Hash)) {
		return false
	}
	return hmac.Equal([]byte(expected[:signatureLength]), []byte(p.Signature[:signatureLength]))
}

// Fresh reports whether a payload issued at the given instant is still
// inside the replay window. A payload aged exactly MaxAge is accepted.
func (v *Verifier) Fresh(issuedAt time.Time) bool {
	return v.now().Sub(issuedAt) <= v.MaxAge
}
