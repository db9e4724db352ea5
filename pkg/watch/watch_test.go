package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func tempDesign(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "design.yaml")
	if err := os.WriteFile(path, []byte("loaMm: 4000\n"), 0o644); err != nil {
		t.Fatalf("write temp design: %v", err)
	}
	return path
}

func TestWatcherTriggersOnTimestampChange(t *testing.T) {
	path := tempDesign(t)
	w := &Watcher{Path: path, Interval: 10 * time.Millisecond, Log: zerolog.Nop()}

	rebuilt := make(chan struct{}, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() error {
			rebuilt <- struct{}{}
			return nil
		})
	}()

	// Unchanged file: no rebuilds.
	select {
	case <-rebuilt:
		t.Fatal("rebuild triggered without a change")
	case <-time.After(50 * time.Millisecond):
	}

	// Bump the mtime well past filesystem timestamp granularity.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	select {
	case <-rebuilt:
	case <-time.After(2 * time.Second):
		t.Fatal("rebuild not triggered after timestamp change")
	}

	// One change, one rebuild.
	select {
	case <-rebuilt:
		t.Fatal("extra rebuild for a single change")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
}

func TestWatcherSurvivesRebuildErrors(t *testing.T) {
	path := tempDesign(t)
	w := &Watcher{Path: path, Interval: 10 * time.Millisecond, Log: zerolog.Nop()}

	calls := make(chan struct{}, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Run(ctx, func() error {
		calls <- struct{}{}
		return errors.New("boom")
	})

	for i := 1; i <= 2; i++ {
		future := time.Now().Add(time.Duration(i+1) * time.Second)
		if err := os.Chtimes(path, future, future); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("rebuild %d not triggered; errors must not stop the loop", i)
		}
	}
}
