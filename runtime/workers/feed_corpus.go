package workers

import (
	"aptos-board/contract"
	"fmt"

	"github.com/samber/lo"
)

var syntheticBodies = []string{
	"Just discovered this amazing dApp! The UX is incredible.",
	"Loving the smooth animations and clean design 🎨",
	"Aptos is the future of blockchain technology!",
	"This message board feels so responsive and modern.",
	"Web3 UX is finally catching up to Web2 standards.",
	"The greyscale theme is absolutely gorgeous 🖤",
	"Seamless wallet integration, well done developers!",
}

var (
	walletPrefixes = []string{"0x1a2b", "0x3c4d", "0x5e6f", "0x7890", "0xabcd"}
	walletSuffixes = []string{"1234", "5678", "9abc", "def0", "2468"}
)

func SyntheticBody(r contract.Random) string {
	return syntheticBodies[r.IntN(len(syntheticBodies))]
}

// SyntheticWallet draws a shortened address from the fixed pools.
func SyntheticWallet(r contract.Random) string {
	prefix := walletPrefixes[r.IntN(len(walletPrefixes))]
	suffix := walletSuffixes[r.IntN(len(walletSuffixes))]
	return fmt.Sprintf("%s...%s", prefix, suffix)
}

// SyntheticWallets lists every address the feed can produce.
func SyntheticWallets() []string {
	return lo.FlatMap(walletPrefixes, func(prefix string, _ int) []string {
		return lo.Map(walletSuffixes, func(suffix string, _ int) string {
			return fmt.Sprintf("%s...%s", prefix, suffix)
		})
	})
}
