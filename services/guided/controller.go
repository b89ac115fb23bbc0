// Package guided implements the form controller shared by every lead-capture
// flow: open/close lifecycle, field edits, whole-form validation, a single
// in-flight submission and the deferred auto-close after success.
package guided

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// State is the lifecycle state of a Controller
type State string

const (
	StateClosed     State = "closed"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

var (
	ErrClosed         = errors.New("form is closed")
	ErrDisposed       = errors.New("form controller disposed")
	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrUnknownField   = errors.New("unknown field")
	ErrNotEditable    = errors.New("form already submitted")
	// ErrSuperseded is returned by Submit when the controller was closed or
	// reopened while the submission was in flight; its result was discarded.
	ErrSuperseded = errors.New("submission result discarded")
)

// Result is the outcome of one submission attempt
type Result struct {
	OK     bool
	Data   any
	Reason string
	// Unexpected marks a failure raised outside the normal submit path,
	// such as a panic in the submit function.
	Unexpected bool
}

// Success builds a successful Result carrying the response payload
func Success(data any) Result {
	return Result{OK: true, Data: data}
}

// Failure builds a failed Result with a reason
func Failure(reason string) Result {
	return Result{Reason: reason}
}

// ValidateFunc returns the failing fields mapped to their messages
type ValidateFunc func(values map[string]string) map[string]string

// SubmitFunc sends a validated form. It must honour ctx cancellation.
type SubmitFunc func(ctx context.Context, values map[string]string) Result

// Schema parameterises a Controller for one flow
type Schema struct {
	Name      string
	Fields    []string
	Validate  ValidateFunc
	Submit    SubmitFunc
	OnSuccess func(values map[string]string, result Result)
	OnFailure func(values map[string]string, result Result)
	// AutoClose closes the controller this long after a success. Zero disables it.
	AutoClose time.Duration
}

// Snapshot is a copy of the controller state safe to hand to templates
type Snapshot struct {
	Name   string
	State  State
	Values map[string]string
	Errors map[string]string
}

// IsOpen reports whether the snapshot was taken while open
func (s Snapshot) IsOpen() bool {
	return s.State != StateClosed
}

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces the clock used for the auto-close timer
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// Controller is the guided form state machine. It is safe for concurrent use;
// only one submission may be in flight at a time.
type Controller struct {
	mu         sync.Mutex
	schema     Schema
	clock      Clock
	state      State
	values     map[string]string
	errors     map[string]string
	fields     map[string]struct{}
	autoClose  timerSlot
	cancel     context.CancelFunc
	generation uint64
	disposed   bool
}

// New creates a closed controller with all fields empty
func New(schema Schema, opts ...Option) *Controller {
	c := &Controller{
		schema: schema,
		clock:  SystemClock{},
		state:  StateClosed,
		errors: map[string]string{},
		fields: make(map[string]struct{}, len(schema.Fields)),
	}
	for _, f := range schema.Fields {
		c.fields[f] = struct{}{}
	}
	for _, opt := range opts {
		opt(c)
	}
	c.values = c.emptyValues()
	return c
}

func (c *Controller) emptyValues() map[string]string {
	values := make(map[string]string, len(c.schema.Fields))
	for _, f := range c.schema.Fields {
		values[f] = ""
	}
	return values
}

// Name returns the schema name
func (c *Controller) Name() string {
	return c.schema.Name
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of the current state, values and errors
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Name:   c.schema.Name,
		State:  c.state,
		Values: copyMap(c.values),
		Errors: copyMap(c.errors),
	}
}

// Open moves a closed controller to editing. Field values from a previous
// attempt are kept. Opening an already open controller does nothing.
func (c *Controller) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	if c.state != StateClosed {
		return nil
	}
	c.state = StateEditing
	c.errors = map[string]string{}
	return nil
}

// Close closes the controller, cancelling the auto-close timer and any
// in-flight submission. Field values are kept. Closing a closed controller
// is a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller) closeLocked() {
	if c.state == StateClosed {
		return
	}
	c.autoClose.cancel()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.state = StateClosed
	c.errors = map[string]string{}
}

// Dispose closes the controller for good. Later calls to Open, Edit and
// Submit return ErrDisposed.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	c.disposed = true
}

// Reset empties every field and clears errors and the submission status
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	if c.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	c.autoClose.cancel()
	c.values = c.emptyValues()
	c.errors = map[string]string{}
	if c.state != StateClosed {
		c.state = StateEditing
	}
	return nil
}

// Edit sets one field. A pending error on that field is cleared; other
// fields' errors are untouched and nothing is re-validated. Fields can only
// be edited while editing or after a failed submission.
func (c *Controller) Edit(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkEditableLocked(field); err != nil {
		return err
	}
	c.values[field] = value
	delete(c.errors, field)
	return nil
}

func (c *Controller) checkEditableLocked(field string) error {
	if c.disposed {
		return ErrDisposed
	}
	switch c.state {
	case StateClosed:
		return ErrClosed
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateSucceeded:
		return ErrNotEditable
	}
	if _, ok := c.fields[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Submit validates the form and, when valid, sends it through the schema's
// SubmitFunc. It blocks until the submission completes and returns the
// resulting state. Validation failures leave the controller editing with
// errors set and are not reported as an error.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return StateClosed, ErrDisposed
	}
	switch c.state {
	case StateClosed:
		c.mu.Unlock()
		return StateClosed, ErrClosed
	case StateSubmitting:
		c.mu.Unlock()
		return StateSubmitting, ErrSubmitInFlight
	}

	values := copyMap(c.values)
	if c.schema.Validate != nil {
		if errs := c.schema.Validate(values); len(errs) > 0 {
			c.errors = copyMap(errs)
			c.state = StateEditing
			c.mu.Unlock()
			return StateEditing, nil
		}
	}

	c.autoClose.cancel()
	c.errors = map[string]string{}
	c.state = StateSubmitting
	c.generation++
	gen := c.generation
	subCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	result := c.runSubmit(subCtx, values)
	cancel()

	c.mu.Lock()
	if c.generation != gen || c.disposed {
		state := c.state
		c.mu.Unlock()
		return state, ErrSuperseded
	}
	c.cancel = nil
	if result.OK {
		c.values = c.emptyValues()
		c.errors = map[string]string{}
		c.state = StateSucceeded
		if c.schema.AutoClose > 0 {
			c.autoClose.set(c.clock.AfterFunc(c.schema.AutoClose, func() {
				c.autoCloseFired(gen)
			}))
		}
	} else {
		c.state = StateFailed
	}
	state := c.state
	c.mu.Unlock()

	if result.OK {
		c.runHook(func() {
			if c.schema.OnSuccess != nil {
				c.schema.OnSuccess(values, result)
			}
		})
	} else {
		c.runHook(func() {
			if c.schema.OnFailure != nil {
				c.schema.OnFailure(values, result)
			}
		})
	}
	return state, nil
}

func (c *Controller) autoCloseFired(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen || c.state != StateSucceeded {
		return
	}
	c.autoClose.t = nil
	c.closeLocked()
}

// runSubmit treats a panic in the submit function like any other failure
func (c *Controller) runSubmit(ctx context.Context, values map[string]string) (result Result) {
	if c.schema.Submit == nil {
		return Failure("no submit function configured")
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] %s submit panicked: %v", c.schema.Name, r)
			result = Failure(fmt.Sprint(r))
			result.Unexpected = true
		}
	}()
	return c.schema.Submit(ctx, values)
}

func (c *Controller) runHook(f func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] %s submission hook panicked: %v", c.schema.Name, r)
		}
	}()
	f()
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
