// Package namecache interns names read from control cards. Every distinct
// text is stored once in an append-only arena and identified by a dense,
// 1-based Handle that stays valid for the life of the Cache.
//
// Two arrays grow independently: the byte arena holding the text and the
// header array holding one (offset, length) slot per handle. Growing the
// arena never changes a handle, and strings returned by Resolve keep aliasing
// the arena generation they were written into. Growing the header array
// rebuilds the hash index from scratch before the new entry is added.
//
// A Cache is not safe for concurrent use.
package namecache

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/joshuapare/cardkit/internal/buf"
)

// Handle identifies an interned string. The zero Handle is never issued.
type Handle uint32

const (
	minArenaBytes = 256
	minHeaders    = 16

	// Both limits fit an int on every platform. The zero Handle stays free
	// as the empty index marker.
	maxHandles = math.MaxInt32
	maxArena   = math.MaxInt32
)

// span locates one interned string inside the arena.
type span struct {
	off uint32
	n   uint32
}

// Stats reports the cache's size and how often it had to grow.
type Stats struct {
	Entries       int // handles issued
	ArenaBytes    int // bytes of text stored
	ArenaCap      int
	HeaderCap     int
	IndexSlots    int
	ArenaGrowths  int
	HeaderGrowths int
	Reinserted    int // index entries moved by header growths, cumulative
}

// Cache is a deduplicating string store. The zero value is ready to use.
type Cache struct {
	arena   []byte
	headers []span
	index   []Handle // open addressing; len is a power of two, 0 marks empty

	arenaGrowths  int
	headerGrowths int
	reinserted    int
}

// New returns a Cache with room for arenaBytes of text and entries handles
// before its first growth. Zero values pick small defaults.
func New(arenaBytes, entries int) *Cache {
	c := &Cache{}
	if arenaBytes > 0 {
		c.arena = make([]byte, 0, min(arenaBytes, maxArena))
	}
	if entries > 0 {
		c.headers = make([]span, 0, min(entries, maxHandles))
		c.rebuildIndex()
	}
	return c
}

// Len returns the number of handles issued.
func (c *Cache) Len() int { return len(c.headers) }

// Find returns the handle of text if it has been interned.
func (c *Cache) Find(text string) (Handle, bool) {
	if len(c.index) == 0 {
		return 0, false
	}
	mask := uint32(len(c.index) - 1)
	for i := hash(text) & mask; ; i = (i + 1) & mask {
		h := c.index[i]
		if h == 0 {
			return 0, false
		}
		if c.equal(h, text) {
			return h, true
		}
	}
}

// Intern returns the handle of text, storing it first if it is new. Interning
// the same text again returns the same handle. Intern panics when the handle
// space or the arena's addressable size is exhausted.
func (c *Cache) Intern(text string) Handle {
	if h, ok := c.Find(text); ok {
		return h
	}
	if len(c.headers) >= maxHandles {
		panic("namecache: handle space exhausted")
	}
	if len(c.headers) == cap(c.headers) {
		c.growHeaders()
	}
	off := c.store(text)
	c.headers = append(c.headers, span{off: off, n: uint32(len(text))})
	h := Handle(len(c.headers))
	c.insert(h, text)
	return h
}

// Resolve returns the text of h. The result aliases the arena and must not be
// modified through unsafe means. Resolve panics if h was not issued by c.
func (c *Cache) Resolve(h Handle) string {
	if h == 0 || int(h) > len(c.headers) {
		panic(fmt.Sprintf("namecache: handle %d out of range [1,%d]", h, len(c.headers)))
	}
	return c.text(c.headers[h-1])
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Entries:       len(c.headers),
		ArenaBytes:    len(c.arena),
		ArenaCap:      cap(c.arena),
		HeaderCap:     cap(c.headers),
		IndexSlots:    len(c.index),
		ArenaGrowths:  c.arenaGrowths,
		HeaderGrowths: c.headerGrowths,
		Reinserted:    c.reinserted,
	}
}

func (c *Cache) equal(h Handle, text string) bool {
	s := c.headers[h-1]
	if int(s.n) != len(text) {
		return false
	}
	return c.text(s) == text
}

func (c *Cache) text(s span) string {
	if s.n == 0 {
		return ""
	}
	return unsafe.String(&c.arena[s.off], int(s.n))
}

// store appends text to the arena and returns its offset. When the arena is
// full a new one at least twice as large is allocated; the old one is left
// untouched for strings already resolved from it.
func (c *Cache) store(text string) uint32 {
	need, ok := buf.AddOverflowSafe(len(c.arena), len(text))
	if !ok || need > maxArena {
		panic("namecache: arena exhausted")
	}
	if need > cap(c.arena) {
		next, _ := buf.Grow(cap(c.arena), need, minArenaBytes)
		next = min(next, maxArena)
		grown := make([]byte, len(c.arena), next)
		copy(grown, c.arena)
		c.arena = grown
		c.arenaGrowths++
	}
	off := uint32(len(c.arena))
	c.arena = append(c.arena, text...)
	return off
}

func (c *Cache) growHeaders() {
	next, _ := buf.Grow(cap(c.headers), len(c.headers)+1, minHeaders)
	next = min(next, maxHandles)
	grown := make([]span, len(c.headers), next)
	copy(grown, c.headers)
	c.headers = grown
	c.headerGrowths++
	c.rebuildIndex()
}

// rebuildIndex sizes the index for the current header capacity and reinserts
// every issued handle.
func (c *Cache) rebuildIndex() {
	slots := 1
	for slots < 2*cap(c.headers) {
		slots <<= 1
	}
	c.index = make([]Handle, slots)
	for i, s := range c.headers {
		c.insert(Handle(i+1), c.text(s))
	}
	c.reinserted += len(c.headers)
}

func (c *Cache) insert(h Handle, text string) {
	mask := uint32(len(c.index) - 1)
	i := hash(text) & mask
	for c.index[i] != 0 {
		i = (i + 1) & mask
	}
	c.index[i] = h
}

// hash is 32-bit FNV-1a.
func hash(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}
