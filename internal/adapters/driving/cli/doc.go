// Package cli exposes the library over a cobra command tree.
package cli
