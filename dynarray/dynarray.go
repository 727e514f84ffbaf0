// Package dynarray implements an append-only sequence backed by a growth
// chain of fixed-size chunks pulled from an arena.Allocator, rather than a
// single contiguous buffer. It supports amortized O(1) PushBack, Back (the
// last element, used by the postings accumulator to bump a term
// frequency in place), and forward-only iteration; there is no random
// access.
package dynarray

import (
	"math"

	"github.com/arborwake/impactindex/arena"
)

// Array is a growth-chain sequence of T, never relocating previously
// written elements (appending a new chunk never invalidates pointers into
// earlier chunks, unlike append on a plain Go slice).
type Array[T any] struct {
	alloc        *arena.Allocator
	growthFactor float64
	initialSize  int
	chunks       [][]T
	filled       []int
	length       int
}

// New creates an Array whose first chunk holds initialSize elements,
// growing by growthFactor (e.g. 1.5) each time the live chunk fills.
func New[T any](a *arena.Allocator, initialSize int, growthFactor float64) *Array[T] {
	if initialSize <= 0 {
		initialSize = 4
	}
	if growthFactor <= 1 {
		growthFactor = 1.5
	}
	return &Array[T]{alloc: a, growthFactor: growthFactor, initialSize: initialSize}
}

// Len returns the number of elements pushed so far.
func (d *Array[T]) Len() int {
	return d.length
}

// PushBack appends v, allocating a new chunk from the arena when the live
// chunk is full. Amortized O(1).
func (d *Array[T]) PushBack(v T) {
	if len(d.chunks) == 0 || d.filled[len(d.filled)-1] == len(d.chunks[len(d.chunks)-1]) {
		d.growChunk()
	}
	last := len(d.chunks) - 1
	d.chunks[last][d.filled[last]] = v
	d.filled[last]++
	d.length++
}

func (d *Array[T]) growChunk() {
	var size int
	if len(d.chunks) == 0 {
		size = d.initialSize
	} else {
		prev := len(d.chunks[len(d.chunks)-1])
		size = int(math.Ceil(float64(prev) * d.growthFactor))
		if size <= prev {
			size = prev + 1
		}
	}
	d.chunks = append(d.chunks, arena.AllocSlice[T](d.alloc, size))
	d.filled = append(d.filled, 0)
}

// Back returns a pointer to the most recently pushed element. The caller
// must not call it on an empty Array.
func (d *Array[T]) Back() *T {
	last := len(d.chunks) - 1
	return &d.chunks[last][d.filled[last]-1]
}

// Iterator walks the Array from front to back, hiding chunk boundaries.
type Iterator[T any] struct {
	arr        *Array[T]
	chunkIndex int
	index      int
}

// Iterator returns a forward iterator positioned before the first element.
func (d *Array[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{arr: d}
}

// Next reports the next element and true, or the zero value and false once
// the Array is exhausted.
func (it *Iterator[T]) Next() (T, bool) {
	var zero T
	for it.chunkIndex < len(it.arr.chunks) {
		if it.index < it.arr.filled[it.chunkIndex] {
			v := it.arr.chunks[it.chunkIndex][it.index]
			it.index++
			return v, true
		}
		it.chunkIndex++
		it.index = 0
	}
	return zero, false
}
