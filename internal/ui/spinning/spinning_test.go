package spinning

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
	"time"
)

// lockedBuffer is a bytes.Buffer safe for concurrent use.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinning(t *testing.T) {
	var out lockedBuffer
	s := NewOn(context.Background(), &out, ThemeAscii)
	time.Sleep(10 * time.Millisecond)
	s.Done()
	s.Done()
	got := out.String()
	assert.Contains(t, got, "\b|")
	assert.Contains(t, got, "\033[?25h")

	// Stops on its own when the context is cancelled.
	ctx, cancel := context.WithCancel(context.Background())
	s = NewOn(ctx, &out, ThemePac)
	cancel()
	s.Done()
}
