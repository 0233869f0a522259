// Package confloader layers configuration from files and environment.
package confloader

import "errors"

// ErrReadBytesNotSupported is returned when ReadBytes is called on the
// map provider; koanf must use Read for map-backed sources.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported by map provider, use Read() instead")

// mapProvider feeds an in-memory map into koanf. It backs the defaults
// layer, which exists as Go values rather than bytes on disk.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
