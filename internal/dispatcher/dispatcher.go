// Package dispatcher translates gesture events into host key presses.
//
// A Dispatcher owns an immutable gesture table and an injector. Each call
// to Handle is independent: it validates the request, looks the gesture
// up, presses at most one key and classifies the outcome as success,
// ignored, validation error or execution error. Handle never panics and
// never returns a Go error; every failure is folded into the Result.
package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"gesturify/internal/gesture"
	"gesturify/internal/input"
)

// Request is the inbound command record. A nil Gesture means the field
// was absent from the payload.
type Request struct {
	Gesture *string `json:"gesture"`
}

// UnmarshalJSON reads only the exact "gesture" key. Keys that differ in
// case are ignored, so {"Gesture":"Fist"} decodes as an absent gesture.
func (r *Request) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	r.Gesture = nil
	raw, ok := fields["gesture"]
	if !ok {
		return nil
	}
	var g *string
	if err := json.Unmarshal(raw, &g); err != nil {
		return fmt.Errorf("gesture: %w", err)
	}
	r.Gesture = g
	return nil
}

// NewRequest builds a request carrying gesture
func NewRequest(gesture string) Request {
	return Request{Gesture: &gesture}
}

// InjectHook observes every injection attempt
type InjectHook func(action string, elapsed time.Duration, err error)

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the logger used for per-gesture outcomes
func WithLogger(logger *log.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithInjectTimeout bounds the context handed to the injector
func WithInjectTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.injectTimeout = timeout
	}
}

// WithInjectHook registers fn to be called after every injection attempt
func WithInjectHook(fn InjectHook) Option {
	return func(d *Dispatcher) {
		d.hooks = append(d.hooks, fn)
	}
}

// Dispatcher maps gestures to actions and runs them through an injector.
// It is safe for concurrent use.
type Dispatcher struct {
	table         *gesture.Table
	injector      input.InputInjector
	logger        *log.Logger
	injectTimeout time.Duration
	hooks         []InjectHook
}

// New creates a Dispatcher over table and injector
func New(table *gesture.Table, injector input.InputInjector, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		table:    table,
		injector: injector,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Table returns the dispatcher's gesture table
func (d *Dispatcher) Table() *gesture.Table {
	return d.table
}

// Handle applies the gesture table to req and produces exactly one result
func (d *Dispatcher) Handle(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("recovered panic while handling gesture", "panic", r, "stack", string(debug.Stack()))
			res = ExecutionError(fmt.Sprintf("%v: %v", ErrPanic, r))
		}
	}()

	if req.Gesture == nil || strings.TrimSpace(*req.Gesture) == "" {
		d.logger.Warn("rejected command", "reason", ReasonGestureMissing)
		return ValidationError(ReasonGestureMissing)
	}
	name := *req.Gesture

	action, ok := d.table.Lookup(name)
	if !ok {
		d.logger.Debug("ignored gesture", "gesture", name)
		return Ignored(ReasonNoAction)
	}

	if err := d.inject(ctx, action); err != nil {
		d.logger.Error("key injection failed", "gesture", name, "action", action, "err", err, "cause", classify(err))
		return ExecutionError(err.Error())
	}

	d.logger.Info("gesture executed", "gesture", name, "action", action)
	return Success(action)
}

func (d *Dispatcher) inject(ctx context.Context, action string) error {
	if d.injectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.injectTimeout)
		defer cancel()
	}

	start := time.Now()
	err := d.injector.Inject(ctx, action)
	elapsed := time.Since(start)
	for _, hook := range d.hooks {
		d.runHook(hook, action, elapsed, err)
	}
	return err
}

// runHook calls hook. A panicking hook is logged and does not affect the result.
func (d *Dispatcher) runHook(hook InjectHook, action string, elapsed time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("recovered panic in inject hook", "action", action, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	hook(action, elapsed, err)
}

// classify names the injection fault for logs. Clients see every fault
// as an execution error.
func classify(err error) string {
	switch {
	case errors.Is(err, input.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, input.ErrNoDisplay):
		return "no_display"
	case errors.Is(err, input.ErrUnsupportedPlatform):
		return "unsupported_platform"
	case errors.Is(err, input.ErrToolNotFound):
		return "tool_not_found"
	case errors.Is(err, input.ErrUnknownKey):
		return "unknown_key"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "injection_failed"
	}
}
