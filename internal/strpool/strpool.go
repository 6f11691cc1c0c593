// Package strpool implements the interned string/name pool a VM shares
// with its compiler (§3 invariant 3: an interned name's index stays
// stable for the lifetime of the pool). Each VM creates its own pool.
//
// Identifier names (locals, globals, getter and setter names) and string
// literals become small integers, so bytecode operands are plain ints
// rather than strings. Single-byte strings additionally get a byte→index
// cache (InternByte) that skips the map lookup. The pool stores strings
// and indices only; it holds no Values.
package strpool

import (
	"github.com/dolthub/swiss"
)

const (
	smallIntMin = -100
	smallIntMax = 100

	byteStrCacheSize = 256
)

// Pool is the shared name/string interner. A Pool is safe for use by a
// single VM; it is not synchronized for concurrent access (§5: Lalang has
// no concurrency primitives of its own).
type Pool struct {
	names     *swiss.Map[string, int]
	strs      []string
	byteCache [byteStrCacheSize]int // index into strs, or -1 if unset
}

// New creates an empty pool.
func New() *Pool {
	p := &Pool{
		names: swiss.NewMap[string, int](64),
	}
	for i := range p.byteCache {
		p.byteCache[i] = -1
	}
	return p
}

// Intern returns the stable index for name, assigning a fresh one the
// first time name is seen. The same name always maps to the same index
// for the lifetime of the pool.
func (p *Pool) Intern(name string) int {
	if idx, ok := p.names.Get(name); ok {
		return idx
	}
	idx := len(p.strs)
	p.strs = append(p.strs, name)
	p.names.Put(name, idx)
	if len(name) == 1 {
		p.byteCache[name[0]] = idx
	}
	return idx
}

// Name returns the interned string for idx. It panics if idx is out of
// range, which indicates a VM-internal bug (bytecode operands are only
// ever produced by Intern).
func (p *Pool) Name(idx int) string {
	return p.strs[idx]
}

// Len reports how many distinct names have been interned so far.
func (p *Pool) Len() int { return len(p.strs) }

// InternByte is a fast path for interning single-byte strings (the common
// case for one-character getter/operator names), avoiding the map lookup
// once a byte has been seen once.
func (p *Pool) InternByte(b byte) int {
	if idx := p.byteCache[b]; idx >= 0 {
		return idx
	}
	return p.Intern(string([]byte{b}))
}

// SmallInt reports whether n falls within the cached small-integer range
// [-100, 100] (§3).
func SmallInt(n int64) bool {
	return n >= smallIntMin && n <= smallIntMax
}
