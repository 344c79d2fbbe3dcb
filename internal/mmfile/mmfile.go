// Package mmfile maps control decks into memory read-only. Where mapping is
// unavailable, or the file is empty, the contents are read instead; callers
// see the same Mapping either way.
package mmfile

import "errors"

// ErrTooLarge indicates a file whose size does not fit an int.
var ErrTooLarge = errors.New("mmfile: file too large to map")

// Mapping holds a file's contents. Data must not be used after Close.
type Mapping struct {
	Data []byte

	unmap func([]byte) error
}

// Mapped reports whether Data is backed by a memory mapping.
func (m *Mapping) Mapped() bool { return m.unmap != nil }

// Close releases the mapping. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m.unmap == nil {
		m.Data = nil
		return nil
	}
	unmap := m.unmap
	data := m.Data
	m.unmap, m.Data = nil, nil
	return unmap(data)
}
