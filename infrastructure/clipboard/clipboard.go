// Package clipboard adapts the system clipboard to contract.Clipboard.
package clipboard

import (
	"aptos-board/contract"
	"fmt"

	"github.com/atotto/clipboard"
)

var _ contract.Clipboard = System{}

// System writes to the operating system clipboard.
// On Linux it needs xclip, xsel or wl-copy on the PATH.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}
