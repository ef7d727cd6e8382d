package vm

import (
	"errors"
	"testing"
)

func TestArraySpaceAllocateNeverReturnsZero(t *testing.T) {
	as := newArraySpace([]uint32{0})
	for i := 0; i < 4; i++ {
		if id := as.allocate(1); id == 0 {
			t.Fatalf("allocate returned reserved identifier 0 on iteration %d", i)
		}
	}
}

func TestArraySpaceAllocateZeroSize(t *testing.T) {
	as := newArraySpace([]uint32{0})
	id := as.allocate(0)
	if _, err := as.load(id, 0); !errors.Is(err, errOutOfBounds) {
		t.Fatalf("load on empty array: err = %v, want errOutOfBounds", err)
	}
}

func TestArraySpaceFreelistReuse(t *testing.T) {
	as := newArraySpace([]uint32{0})
	a := as.allocate(4)
	if err := as.deallocate(a); err != nil {
		t.Fatalf("deallocate(%d): %v", a, err)
	}
	if as.isLive(a) {
		t.Fatalf("identifier %d still live after deallocate", a)
	}
	b := as.allocate(2)
	if b != a {
		t.Fatalf("allocate after free = %d, want reused identifier %d", b, a)
	}
	if !as.isLive(b) {
		t.Fatalf("identifier %d not live after reuse", b)
	}
}

func TestArraySpaceDeallocateProgramIsError(t *testing.T) {
	as := newArraySpace([]uint32{0})
	if err := as.deallocate(0); !errors.Is(err, errDeallocateProgram) {
		t.Fatalf("deallocate(0): err = %v, want errDeallocateProgram", err)
	}
}

func TestArraySpaceDeallocateUnknownIsError(t *testing.T) {
	as := newArraySpace([]uint32{0})
	if err := as.deallocate(99); !errors.Is(err, errUnknownIdentifier) {
		t.Fatalf("deallocate(99): err = %v, want errUnknownIdentifier", err)
	}
	if err := as.deallocate(1); !errors.Is(err, errUnknownIdentifier) {
		t.Fatalf("deallocate(1) of never-allocated identifier: err = %v, want errUnknownIdentifier", err)
	}
}

func TestArraySpaceLoadStoreBounds(t *testing.T) {
	as := newArraySpace([]uint32{0})
	id := as.allocate(3)

	if err := as.store(id, 2, 42); err != nil {
		t.Fatalf("store in bounds: %v", err)
	}
	v, err := as.load(id, 2)
	if err != nil || v != 42 {
		t.Fatalf("load(2) = (%d, %v), want (42, nil)", v, err)
	}

	if err := as.store(id, 3, 0); !errors.Is(err, errOutOfBounds) {
		t.Fatalf("store out of bounds: err = %v, want errOutOfBounds", err)
	}
	if _, err := as.load(id, 3); !errors.Is(err, errOutOfBounds) {
		t.Fatalf("load out of bounds: err = %v, want errOutOfBounds", err)
	}
}

func TestArraySpaceLoadStoreUnknownIdentifier(t *testing.T) {
	as := newArraySpace([]uint32{0})
	if _, err := as.load(7, 0); !errors.Is(err, errUnknownIdentifier) {
		t.Fatalf("load unknown: err = %v, want errUnknownIdentifier", err)
	}
	if err := as.store(7, 0, 1); !errors.Is(err, errUnknownIdentifier) {
		t.Fatalf("store unknown: err = %v, want errUnknownIdentifier", err)
	}
}

func TestArraySpaceCloneIntoZeroPreservesContentAndIsolated(t *testing.T) {
	as := newArraySpace([]uint32{0xDEAD, 0xBEEF})
	id := as.allocate(2)
	as.store(id, 0, 111)
	as.store(id, 1, 222)

	if err := as.cloneIntoZero(id); err != nil {
		t.Fatalf("cloneIntoZero: %v", err)
	}

	prog := as.program()
	if len(prog) != 2 || prog[0] != 111 || prog[1] != 222 {
		t.Fatalf("program() = %v, want [111 222]", prog)
	}

	// Further mutation of the source array must not retroactively affect
	// the copy now sitting in array 0.
	as.store(id, 0, 999)
	if as.program()[0] != 111 {
		t.Fatalf("program()[0] = %d after source mutation, want unchanged 111", as.program()[0])
	}
}

func TestArraySpaceCloneIntoZeroOfZeroIsNoop(t *testing.T) {
	as := newArraySpace([]uint32{7, 8, 9})
	if err := as.cloneIntoZero(0); err != nil {
		t.Fatalf("cloneIntoZero(0): %v", err)
	}
	prog := as.program()
	if len(prog) != 3 || prog[0] != 7 || prog[1] != 8 || prog[2] != 9 {
		t.Fatalf("program() = %v, want unchanged [7 8 9]", prog)
	}
}

func TestArraySpaceCloneIntoZeroUnknownIdentifier(t *testing.T) {
	as := newArraySpace([]uint32{0})
	if err := as.cloneIntoZero(5); !errors.Is(err, errUnknownIdentifier) {
		t.Fatalf("cloneIntoZero(5): err = %v, want errUnknownIdentifier", err)
	}
}
