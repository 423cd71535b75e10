package qrpayload

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	bookingID := uuid.New()
	eventID := uuid.New()

	p := Encode(bookingID, eventID)
	raw, err := p.String()
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, bookingID, decoded.BookingID)
	assert.Equal(t, eventID, decoded.EventID)
	assert.Equal(t, p.Hash, decoded.Hash)
	assert.Equal(t, p.Timestamp, decoded.Timestamp)
	assert.Equal(t, p.Signature, decoded.Signature)
	assert.Len(t, p.Signature, 16)
	assert.Len(t, p.Hash, 64)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "purchase:abc;ticket:def"},
		{"empty", ""},
		{"json but wrong shape", `{"foo": "bar"}`},
		{"missing signature", `{"bookingId":"` + uuid.New().String() + `","eventId":"` + uuid.New().String() + `","hash":"ab","timestamp":1700000000000}`},
		{"zero booking id", `{"bookingId":"00000000-0000-0000-0000-000000000000","eventId":"` + uuid.New().String() + `","hash":"ab","timestamp":1700000000000,"signature":"deadbeefdeadbeef"}`},
		{"bad uuid", `{"bookingId":"not-a-uuid","eventId":"also-not","hash":"ab","timestamp":1,"signature":"deadbeefdeadbeef"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestVerifySignature(t *testing.T) {
	v := NewVerifier()
	p := Encode(uuid.New(), uuid.New())

	assert.True(t, v.VerifySignature(p))
}

func TestVerifySignatureTampered(t *testing.T) {
	v := NewVerifier()

	t.Run("signature fragment edited", func(t *testing.T) {
		p := Encode(uuid.New(), uuid.New())
		flipped := "0"
		if p.Signature[0] == '0' {
			flipped = "1"
		}
		p.Signature = flipped + p.Signature[1:]
		assert.False(t, v.VerifySignature(p))
	})

	t.Run("booking id swapped", func(t *testing.T) {
		p := Encode(uuid.New(), uuid.New())
		p.BookingID = uuid.New()
		assert.False(t, v.VerifySignature(p))
	})

	t.Run("event id swapped", func(t *testing.T) {
		p := Encode(uuid.New(), uuid.New())
		p.EventID = uuid.New()
		assert.False(t, v.VerifySignature(p))
	})

	t.Run("timestamp shifted", func(t *testing.T) {
		p := Encode(uuid.New(), uuid.New())
		p.Timestamp++
		assert.False(t, v.VerifySignature(p))
	})

	t.Run("hash edited", func(t *testing.T) {
		p := Encode(uuid.New(), uuid.New())
		p.Hash = flipHex(p.Hash[0]) + p.Hash[1:]
		assert.False(t, v.VerifySignature(p))
	})

	t.Run("signature too short", func(t *testing.T) {
		p := Encode(uuid.New(), uuid.New())
		p.Signature = p.Signature[:8]
		assert.False(t, v.VerifySignature(p))
	})
}

func TestVerifySignatureTamperedTransportString(t *testing.T) {
	v := NewVerifier()

	t.Run("timestamp digit flipped", func(t *testing.T) {
		p := Encode(uuid.New(), uuid.New())
		raw, err := p.String()
		require.NoError(t, err)

		idx := strings.Index(raw, `"timestamp":`) + len(`"timestamp":`)
		mutated := raw[:idx] + flipDigit(raw[idx]) + raw[idx+1:]

		decoded, err := Decode(mutated)
		require.NoError(t, err)
		assert.False(t, v.VerifySignature(decoded))
	})

	t.Run("hash character flipped", func(t *testing.T) {
		p := Encode(uuid.New(), uuid.New())
		raw, err := p.String()
		require.NoError(t, err)

		idx := strings.Index(raw, `"hash":"`) + len(`"hash":"`)
		mutated := raw[:idx] + flipHex(raw[idx]) + raw[idx+1:]

		decoded, err := Decode(mutated)
		require.NoError(t, err)
		assert.False(t, v.VerifySignature(decoded))
	})
}

func flipDigit(b byte) string {
	if b == '1' {
		return "2"
	}
	return "1"
}

func flipHex(b byte) string {
	if b == 'a' {
		return "b"
	}
	return "a"
}

func TestFreshness(t *testing.T) {
	issued := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just issued", issued.Add(time.Second), true},
		{"exactly thirty days", issued.Add(30 * 24 * time.Hour), true},
		{"one millisecond past the window", issued.Add(30*24*time.Hour + time.Millisecond), false},
		{"well past the window", issued.Add(45 * 24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier()
			v.now = func() time.Time { return tt.now }
			assert.Equal(t, tt.want, v.Fresh(issued))
		})
	}
}
