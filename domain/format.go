package domain

import (
	"fmt"
	"time"
)

// FormatWallet shortens an address to its first 6 and last 4 characters.
func FormatWallet(address string) string {
	r := []rune(address)
	if len(r) <= 10 {
		return address
	}
	return fmt.Sprintf("%s...%s", string(r[:6]), string(r[len(r)-4:]))
}

// RelativeTime renders the age of a timestamp the way the feed displays it.
func RelativeTime(at, now time.Time) string {
	diff := now.Sub(at)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	}
}
