package chat

import (
	"context"
	"strings"
	"sync"
)

// Dispatcher is the single entry point for chat commands.
//
// Commands are processed strictly one at a time under a mutex, so two
// concurrent utterances can never interleave their read-check-write
// sequences against the stores. After a successful mutation the
// dispatcher hands the resulting event to the notifier; delivery is
// best-effort and never affects the reply.
type Dispatcher struct {
	matcher  *Matcher
	executor *Executor

	mu       sync.Mutex
	notifier Notifier
	logger   Logger
}

// NewDispatcher assembles the pipeline.
func NewDispatcher(matcher *Matcher, executor *Executor) *Dispatcher {
	return &Dispatcher{
		matcher:  matcher,
		executor: executor,
		logger:   noopLogger{},
	}
}

// SetLogger attaches a logger.
func (d *Dispatcher) SetLogger(logger Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// SetNotifier attaches the observer that receives state-change events.
func (d *Dispatcher) SetNotifier(n Notifier) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifier = n
}

// HandleMessage interprets one utterance and returns the reply. It
// always produces a Result; a panic anywhere in the pipeline is
// recovered into a generic error reply.
func (d *Dispatcher) HandleMessage(ctx context.Context, message string) (result Result) {
	d.mu.Lock()
	defer d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic handling chat message", "panic", r)
			result = d.executor.responder.InternalError()
		}
	}()

	if strings.TrimSpace(message) == "" {
		return d.executor.responder.EmptyMessage()
	}

	intent := d.matcher.Match(message)
	d.logger.Debug("chat intent matched", "kind", intent.Kind.String())

	outcome := d.executor.Execute(ctx, intent)

	if d.notifier != nil {
		if outcome.Device != nil {
			d.notifier.NotifyDeviceStatus(*outcome.Device)
		}
		if outcome.Automation != nil {
			d.notifier.NotifyAutomationChange(*outcome.Automation)
		}
	}

	return outcome.Result
}
