package domain

import (
	"strings"
	"unicode/utf16"
)

// AvatarPalette is the fixed set of avatar colors.
var AvatarPalette = []string{"#1a1a1a", "#2a2a2a", "#3a3a3a", "#4a4a4a", "#5a5a5a"}

// AvatarColor sums the UTF-16 code units of the address and picks a palette entry.
// The same address always maps to the same color.
func AvatarColor(address string) string {
	sum := 0
	for _, unit := range utf16.Encode([]rune(address)) {
		sum += int(unit)
	}
	return AvatarPalette[sum%len(AvatarPalette)]
}

// AvatarInitials returns the two characters following the "0x" prefix, upper-cased.
func AvatarInitials(address string) string {
	r := []rune(address)
	if len(r) < 4 {
		return ""
	}
	return strings.ToUpper(string(r[2:4]))
}
