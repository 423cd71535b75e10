package verification

import (
	"crypto/rand"
	"fmt"
	"time"
)

const scanIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewScanID generates a scan identifier of the form SCAN-<UTCdate>-<5 random
// characters>, e.g. SCAN-20240115-AB3K9.
func NewScanID(at time.Time) string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived suffix rather than panicking mid-scan.
		nanos := at.UnixNano()
		for i := range buf {
			buf[i] = byte(nanos >> (uint(i) * 8))
		}
	}

	suffix := make([]byte, len(buf))
	for i, b := range buf {
		suffix[i] = scanIDAlphabet[int(b)%len(scanIDAlphabet)]
	}

	return fmt.Sprintf("SCAN-%s-%s", at.UTC().Format("20060102"), suffix)
}
