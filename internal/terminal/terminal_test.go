package terminal

import (
	"os"
	"testing"
	"time"

	"github.com/yegors/scribe/pkg/logger"
)

func TestAwaitReturnsOnByte(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	done := make(chan error, 1)
	go func() {
		done <- NewKeyWait(r, logger.NewNop()).Await()
	}()

	// Await must still be blocked before any input arrives
	select {
	case err := <-done:
		t.Fatalf("await returned before input: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if _, err := w.Write([]byte{'q'}); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("await failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("await did not return after keypress")
	}
}

func TestAwaitReturnsOnEOF(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer r.Close()

	done := make(chan error, 1)
	go func() {
		done <- NewKeyWait(r, logger.NewNop()).Await()
	}()

	w.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("EOF should count as the stop signal: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("await did not return on EOF")
	}
}
