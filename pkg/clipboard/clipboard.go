// Package clipboard copies reports to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies text to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// System implements Copier with github.com/atotto/clipboard.
type System struct{}

// Copy writes text to the system clipboard.
func (System) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ Copier = System{}
