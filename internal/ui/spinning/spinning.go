// Package spinning provides a spinning symbol to show while a program is thinking, and
// the handling of interrupts (Ctrl+C) that restores the terminal.
package spinning

import (
	"context"
	"fmt"
	"io"
	"k8s.io/klog/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

var (
	ThemeAscii = []rune("|/-\\")
	ThemePac   = []rune("ᗧᗤᗧ○")

	// Theme used by New. It defaults to ThemeAscii.
	Theme = ThemeAscii

	// Period between symbols.
	Period = 250 * time.Millisecond
)

// SafeInterrupt captures SigInt (Ctrl+C) and SigTerm and calls onInterrupt.
// If the program hasn't exited after gracePeriod, it resets the terminal and exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n")
}

// Spinning symbol display, running on its own goroutine until Done is called.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()
}

// New starts a spinning display on os.Stdout, that runs until Done is called or ctx is done.
func New(ctx context.Context) *Spinning {
	return NewOn(ctx, os.Stdout, Theme)
}

// NewOn starts a spinning display on w with the given theme.
func NewOn(ctx context.Context, w io.Writer, theme []rune) *Spinning {
	s := &Spinning{}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Period)
		defer ticker.Stop()
		// Hide cursor, and restore it at the end.
		_, _ = fmt.Fprint(w, "\033[?25l")
		defer func() { _, _ = fmt.Fprint(w, "\033[?25h") }()

		_, _ = fmt.Fprint(w, " ")
		for idx := 0; ; idx = (idx + 1) % len(theme) {
			_, _ = fmt.Fprintf(w, "\b%c", theme[idx])
			select {
			case <-ctx.Done():
				_, _ = fmt.Fprint(w, "\b \b")
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Done stops the spinning display and waits for it to clean up. It can be called more than once.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
