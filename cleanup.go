package decoder

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-i2p/logger"
	"github.com/sirupsen/logrus"
)

// CleanupManager coordinates removal of transient state on every exit
// path. A cancelled run must leave nothing observable behind, so partial
// output files and other temporary resources register here and are torn
// down both on normal completion and on an external signal.
type CleanupManager struct {
	// ctx is the context cancelled when cleanup is initiated
	ctx context.Context

	// cancel cancels the cleanup context
	cancel context.CancelFunc

	// cleanups holds the registered cleanup functions, in registration
	// order; they run in reverse
	cleanups []namedCleanup

	// mu protects the cleanup list
	mu sync.Mutex

	// logger for cleanup events
	logger *logger.Logger

	// once ensures cleanup only happens once
	once sync.Once
}

type namedCleanup struct {
	name string
	fn   func()
}

// NewCleanupManager creates a cleanup manager.
func NewCleanupManager() *CleanupManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &CleanupManager{
		ctx:    ctx,
		cancel: cancel,
		logger: logger.GetGoI2PLogger(),
	}
}

// Register adds a cleanup function under a diagnostic name. Functions run
// in reverse registration order.
func (cm *CleanupManager) Register(name string, fn func()) {
	if fn == nil {
		return
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.cleanups = append(cm.cleanups, namedCleanup{name: name, fn: fn})
	cm.logger.WithFields(logrus.Fields{
		"name":  name,
		"total": len(cm.cleanups),
	}).Debug("registered cleanup")
}

// Unregister drops a previously registered cleanup by name, typically
// because the resource was promoted to a permanent one (a temporary file
// renamed into place).
func (cm *CleanupManager) Unregister(name string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	kept := cm.cleanups[:0]
	for _, c := range cm.cleanups {
		if c.name != name {
			kept = append(kept, c)
		}
	}
	cm.cleanups = kept
	cm.logger.WithField("name", name).Debug("unregistered cleanup")
}

// Context returns a context cancelled when cleanup has been initiated.
func (cm *CleanupManager) Context() context.Context {
	return cm.ctx
}

// Run executes all registered cleanups exactly once, newest first.
func (cm *CleanupManager) Run() {
	cm.once.Do(func() {
		cm.cancel()

		cm.mu.Lock()
		cleanups := cm.cleanups
		cm.cleanups = nil
		cm.mu.Unlock()

		for i := len(cleanups) - 1; i >= 0; i-- {
			cm.logger.WithField("name", cleanups[i].name).Debug("running cleanup")
			cleanups[i].fn()
		}
	})
}

// TrapSignals installs a handler running the cleanups and terminating the
// process with the given exit code when an interrupt or termination
// signal arrives. Cancellation is all-or-nothing at the process boundary.
func (cm *CleanupManager) TrapSignals(exitCode int) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		cm.logger.WithField("signal", sig.String()).Debug("signal received, cleaning up")
		cm.Run()
		os.Exit(exitCode)
	}()
}
