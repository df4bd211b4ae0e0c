package mem

import (
	"runtime"
	"testing"
	"time"
)

func TestConstantTimeEqual(t *testing.T) {
	if !ConstantTimeEqual([]byte("hello"), []byte("hello")) {
		t.Fatal("equal slices reported unequal")
	}
	if ConstantTimeEqual([]byte("hello"), []byte("world")) {
		t.Fatal("unequal slices reported equal")
	}
	if ConstantTimeEqual([]byte("hello"), []byte("hello!")) {
		t.Fatal("mismatched lengths reported equal")
	}
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Wipe(b)
	for _, v := range b {
		if v != 0 {
			t.Fatalf("expected all-zero after wipe, got %v", b)
		}
	}
}

func TestSecureBufClose(t *testing.T) {
	buf := NewSecureBuf([]byte{9, 9, 9})
	buf.Close()
	buf.Close() // idempotent
	if buf.Expose() != nil {
		t.Fatal("expected nil after close")
	}
}

func TestSecureBufFinalizerWipesUnclosed(t *testing.T) {
	backing := []byte{7, 7, 7}
	NewSecureBuf(backing) // dropped without Close

	// Finalizers run asynchronously after collection; retry a few cycles
	// before concluding the backstop never fired.
	for i := 0; i < 20; i++ {
		runtime.GC()
		wiped := true
		for _, v := range backing {
			if v != 0 {
				wiped = false
				break
			}
		}
		if wiped {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected the finalizer to wipe an unclosed buffer's bytes")
}
