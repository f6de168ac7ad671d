package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Rendering...")
	var buf bytes.Buffer
	s.out = &buf
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop()

	if !bytes.Contains(buf.Bytes(), []byte("Rendering...")) {
		t.Errorf("spinner wrote %q", buf.String())
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancellation")
	}
	s.Stop()
}
