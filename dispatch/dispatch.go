package dispatch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrSubscriberFailed = errors.New("subscriber failed")
	ErrSubscriberPanic  = errors.New("subscriber panicked")
)

// Event is the name of something that happens in an application.
type Event string

// Param is a value sent along with an [Event].
type Param any

// Handler is called with the parameters given to [Dispatcher.Emit].
// Handlers should return quickly, since they run on the emitting goroutine and block the handlers after them.
type Handler func(params ...Param) error

// HandlerFunc adapts a function that can't fail into a [Handler].
func HandlerFunc(fn func(params ...Param)) Handler {
	return func(params ...Param) error {
		fn(params...)
		return nil
	}
}

// SubscriberError reports a single handler's failure during an emission.
type SubscriberError struct {
	Event    Event
	Index    int    // Index is the handler's position in the subscription order at emit time.
	Emission string // Emission identifies the Emit call, so failures from the same call can be correlated.
	Panic    any    // Panic is the recovered value if the handler panicked.
	wrapped  error
}

func (e *SubscriberError) Error() string {
	return fmt.Sprintf("subscriber %d for event '%s' failed: %v", e.Index, e.Event, e.wrapped)
}

func (e *SubscriberError) Is(err error) bool {
	return err == ErrSubscriberFailed
}

func (e *SubscriberError) Unwrap() error {
	return e.wrapped
}

type dispatchConf struct {
	log       *slog.Logger
	onFailure []func(*SubscriberError)
}

// Option configures a [Dispatcher] at construction.
type Option func(conf *dispatchConf) error

// WithLogger sets the logger used to report subscriber failures.
func WithLogger(log *slog.Logger) Option {
	return func(conf *dispatchConf) error {
		if log == nil {
			return errors.New("nil logger")
		}
		conf.log = log
		return nil
	}
}

// OnFailure registers a function that is called with every [SubscriberError].
// This may be given more than once.
func OnFailure(fn func(*SubscriberError)) Option {
	return func(conf *dispatchConf) error {
		if fn == nil {
			return errors.New("nil failure function")
		}
		conf.onFailure = append(conf.onFailure, fn)
		return nil
	}
}

// Dispatcher is a registry of [Handler] by [Event].
// The zero value is not usable, use [New].
type Dispatcher struct {
	log       *slog.Logger
	onFailure []func(*SubscriberError)

	mux      sync.Mutex
	handlers map[Event][]Handler
}

// New creates a [Dispatcher] with the given options.
// An invalid option will panic, since this indicates a programming error at application start.
func New(opts ...Option) *Dispatcher {
	conf := dispatchConf{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(&conf); err != nil {
			panic(fmt.Sprintf("invalid dispatcher option: %v", err))
		}
	}
	return &Dispatcher{
		log:       conf.log,
		onFailure: conf.onFailure,
		handlers:  map[Event][]Handler{},
	}
}

// Subscribe registers a handler for the event.
// Handlers are not deduplicated, and a nil handler is ignored.
func (d *Dispatcher) Subscribe(evt Event, handler Handler) {
	if handler == nil {
		return
	}
	d.mux.Lock()
	defer d.mux.Unlock()
	d.handlers[evt] = append(d.handlers[evt], handler)
}

// Unsubscribe removes all handlers for the given events.
// Calling this without any events removes every handler for every event.
func (d *Dispatcher) Unsubscribe(evts ...Event) {
	d.mux.Lock()
	defer d.mux.Unlock()
	if len(evts) == 0 {
		d.handlers = map[Event][]Handler{}
		return
	}
	for _, evt := range evts {
		delete(d.handlers, evt)
	}
}

// Emit calls each handler registered for the event, in the order they were registered.
// Handlers subscribed while Emit is running will not be called by that emission.
func (d *Dispatcher) Emit(evt Event, params ...Param) {
	d.mux.Lock()
	// Must copy, since a handler may subscribe to the same event and append into the backing array.
	handlers := append([]Handler(nil), d.handlers[evt]...)
	d.mux.Unlock()

	if len(handlers) == 0 {
		return
	}
	var emission string
	for i, handler := range handlers {
		err := d.call(evt, i, handler, params)
		if err == nil {
			continue
		}
		if emission == "" {
			emission = uuid.NewString()
		}
		err.Emission = emission
		d.fail(err)
	}
}

func (d *Dispatcher) call(evt Event, index int, handler Handler, params []Param) (failure *SubscriberError) {
	defer func() {
		if r := recover(); r != nil {
			failure = &SubscriberError{
				Event:   evt,
				Index:   index,
				Panic:   r,
				wrapped: fmt.Errorf("%w: %v", ErrSubscriberPanic, r),
			}
		}
	}()
	if err := handler(params...); err != nil {
		return &SubscriberError{
			Event:   evt,
			Index:   index,
			wrapped: err,
		}
	}
	return nil
}

func (d *Dispatcher) fail(err *SubscriberError) {
	d.log.Error("Event subscriber failed",
		"event", string(err.Event),
		"subscriber", err.Index,
		"emission", err.Emission,
		"error", err.wrapped,
	)
	for _, fn := range d.onFailure {
		d.notify(fn, err)
	}
}

// notify calls a failure hook, so a panicking hook can't stop the emission either.
func (d *Dispatcher) notify(fn func(*SubscriberError), err *SubscriberError) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Failure hook panicked",
				"event", string(err.Event),
				"subscriber", err.Index,
				"emission", err.Emission,
				"panic", r,
			)
		}
	}()
	fn(err)
}
