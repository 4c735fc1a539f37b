// Package shutdown holds the process-wide running flag and an interruptible
// wait used between polling passes.
package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"
)

// Guard flips from running to stopped exactly once.
type Guard struct {
	running atomic.Bool
	once    sync.Once
	done    chan struct{}
}

func New() *Guard {
	g := &Guard{done: make(chan struct{})}
	g.running.Store(true)
	return g
}

// Running reports whether shutdown has not been requested yet.
func (g *Guard) Running() bool {
	return g.running.Load()
}

// Shutdown stops the guard. Calling it more than once is a no-op.
func (g *Guard) Shutdown() {
	g.once.Do(func() {
		g.running.Store(false)
		close(g.done)
	})
}

// Done is closed once Shutdown has been called.
func (g *Guard) Done() <-chan struct{} {
	return g.done
}

// Wait blocks for up to seconds, returning as soon as shutdown is requested.
func (g *Guard) Wait(seconds int) {
	if seconds <= 0 || !g.Running() {
		return
	}

	timer := time.NewTimer(time.Duration(seconds) * time.Second)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-g.done:
	}
}

// Notify calls Shutdown when the process receives SIGINT or SIGTERM.
// onSignal, if non-nil, is invoked with the received signal first.
// The returned function unregisters the handler.
func (g *Guard) Notify(onSignal func(os.Signal)) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, shutdownSignals...)

	quit := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigChan:
				if onSignal != nil {
					onSignal(sig)
				}
				g.Shutdown()
			case <-quit:
				return
			}
		}
	}()

	var stopOnce sync.Once
	return func() {
		stopOnce.Do(func() {
			signal.Stop(sigChan)
			close(quit)
		})
	}
}
