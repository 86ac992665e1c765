package render

import (
	"fmt"
	"unsafe"
)

// arenaAlign keeps every live offset 8-byte aligned so typed views into the
// buffer are always safely addressable.
const arenaAlign = 8

// Arena is a scoped bump allocator used for all scratch memory inside one
// frame: clipping buffers, per-fragment varyings, and world-triangle scratch.
// Pushes and pops must pair up in strict LIFO order with matching sizes;
// PopAll rewinds to zero unconditionally. Violations abort — see errors.go.
type Arena struct {
	buf   []byte
	top   int
	sizes []int // shadow stack of rounded push sizes, for LIFO enforcement
}

// NewArena allocates an arena of the given byte size. The renderer needs
// roughly 256 KiB; the reference configuration uses 250 KiB.
func NewArena(size int) *Arena {
	return &Arena{
		buf:   make([]byte, size),
		sizes: make([]int, 0, 64),
	}
}

// push reserves n bytes (rounded up to the arena alignment) and returns the
// reserved region.
func (a *Arena) push(n int) []byte {
	n = alignUp(n)
	if a.top+n > len(a.buf) {
		panic(fmt.Errorf("%w: push of %d bytes at offset %d exceeds %d-byte arena",
			ErrArenaOverflow, n, a.top, len(a.buf)))
	}
	p := a.buf[a.top : a.top+n]
	a.top += n
	a.sizes = append(a.sizes, n)
	return p
}

// pop releases the most recent unpopped push, which must have reserved
// exactly n bytes.
func (a *Arena) pop(n int) {
	n = alignUp(n)
	if len(a.sizes) == 0 || a.top < n {
		panic(fmt.Errorf("%w: pop of %d bytes with %d live", ErrArenaUnderflow, n, a.top))
	}
	if last := a.sizes[len(a.sizes)-1]; last != n {
		panic(fmt.Errorf("%w: pop of %d bytes does not match last push of %d", ErrArenaUnderflow, n, last))
	}
	a.sizes = a.sizes[:len(a.sizes)-1]
	a.top -= n
}

// PopAll rewinds the arena to empty unconditionally.
func (a *Arena) PopAll() {
	a.top = 0
	a.sizes = a.sizes[:0]
}

// Zero clears the whole backing region. Called once at frame start.
func (a *Arena) Zero() {
	clear(a.buf)
}

// Size returns the arena capacity in bytes.
func (a *Arena) Size() int {
	return len(a.buf)
}

func alignUp(n int) int {
	return (n + arenaAlign - 1) &^ (arenaAlign - 1)
}

// Push reserves one value of type V and returns a pointer into the arena.
// The matching Pop[V] must be the next pop.
func Push[V any](a *Arena) *V {
	p := a.push(int(unsafe.Sizeof(*new(V))))
	return (*V)(unsafe.Pointer(&p[0]))
}

// Pop releases the most recent Push[V].
func Pop[V any](a *Arena) {
	a.pop(int(unsafe.Sizeof(*new(V))))
}

// PushSlice reserves n values of type V and returns them as a slice backed
// by the arena. The matching PopSlice[V] with the same n must be the next
// pop.
func PushSlice[V any](a *Arena, n int) []V {
	p := a.push(n * int(unsafe.Sizeof(*new(V))))
	return unsafe.Slice((*V)(unsafe.Pointer(&p[0])), n)
}

// PopSlice releases the most recent PushSlice[V] of n values.
func PopSlice[V any](a *Arena, n int) {
	a.pop(n * int(unsafe.Sizeof(*new(V))))
}
