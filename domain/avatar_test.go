package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAvatarColor(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		address  string
		expected string
	}{
		// '0' + 'x' = 48 + 120 = 168, 168 % 5 = 3
		{"0x", "#4a4a4a"},
		// 'a' = 97, 97 % 5 = 2
		{"a", "#3a3a3a"},
		{"", "#1a1a1a"},
		// 0x1234...5678 sums to 726
		{"0x1234...5678", "#2a2a2a"},
	}
	for _, tt := range tests {
		req.Equal(tt.expected, AvatarColor(tt.address), "address=%s", tt.address)
	}
}

func TestAvatarColor_IsStable(t *testing.T) {
	req := require.New(t)
	address := "0x742d35Cc6634C0532925a3b8D0Ca05c5E8d9a93e"
	first := AvatarColor(address)
	for i := 0; i < 100; i++ {
		req.Equal(first, AvatarColor(address))
	}
	req.Contains(AvatarPalette, first)
}

func TestAvatarColor_CountsUTF16Units(t *testing.T) {
	req := require.New(t)
	// U+1F680 is a surrogate pair 0xD83D 0xDE80, 55357 + 56960 = 112317, 112317 % 5 = 2
	req.Equal("#3a3a3a", AvatarColor("🚀"))
}

func TestAvatarInitials(t *testing.T) {
	req := require.New(t)
	req.Equal("74", AvatarInitials("0x742d35Cc"))
	req.Equal("AB", AvatarInitials("0xabcd...efgh"))
	req.Equal("", AvatarInitials("0x1"))
}
