// Package humanize renders byte counters and expiry timestamps for display.
package humanize

import (
	"fmt"
	"time"
)

// Placeholder is rendered when a value is not known at all.
const Placeholder = "-"

var byteSizes = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes formats n against a 1024 ladder with two decimals, using the largest
// unit not exceeding the value. Values beyond the ladder stay in TB.
func Bytes(n uint64) string {
	if n == 0 {
		return "0 B"
	}
	value := float64(n)
	exp := 0
	for value >= 1024 && exp < len(byteSizes)-1 {
		value /= 1024
		exp++
	}
	return fmt.Sprintf("%.2f %s", value, byteSizes[exp])
}

// OptionalBytes is Bytes for counters that may be missing entirely.
func OptionalBytes(n *uint64) string {
	if n == nil {
		return Placeholder
	}
	return Bytes(*n)
}

const expireDateFormat = "2006-01-02"

// Expire renders an expiry timestamp relative to now. A missing timestamp
// renders as Placeholder, zero means the subscription never expires, and the
// countdown switches to a plain date beyond seven days.
func Expire(expire *int64, now time.Time) string {
	if expire == nil {
		return Placeholder
	}
	if *expire == 0 {
		return "never expires"
	}
	expireTime := time.Unix(*expire, 0)
	remaining := expireTime.Sub(now)
	if remaining < 0 {
		return "expired (" + expireTime.Format(expireDateFormat) + ")"
	}
	days := int(remaining.Hours() / 24)
	switch {
	case days == 0:
		return "expires today"
	case days <= 7:
		return fmt.Sprintf("%d days (%s)", days, expireTime.Format(expireDateFormat))
	default:
		return expireTime.Format(expireDateFormat)
	}
}
