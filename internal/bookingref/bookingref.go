// Package bookingref generates human-readable booking references of the form
// HCC-<base36 timestamp>-<random suffix>. Uniqueness is probabilistic; the
// unique index on bookings.booking_number is the authoritative backstop and
// callers retry with a fresh reference on a duplicate-key error.
package bookingref

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	prefix         = "HCC"
	suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLength   = 6
)

// Pattern matches every generated reference; exported for validation and tests.
const Pattern = `^HCC-[0-9A-Z]+-[0-9A-Z]{6}$`

// New returns a fresh booking reference. The millisecond timestamp segment
// keeps references roughly sortable by creation time.
func New() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix, err := gonanoid.Generate(suffixAlphabet, suffixLength)
	if err != nil {
		// gonanoid only fails when the system entropy source does.
		panic(fmt.Sprintf("bookingref: entropy source unavailable: %v", err))
	}
	return fmt.Sprintf("%s-%s-%s", prefix, ts, suffix)
}
