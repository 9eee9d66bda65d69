// Package file provides a TOML-file configuration store.
package file
