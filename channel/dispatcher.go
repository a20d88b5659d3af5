// Package channel dispatches named in-process calls to registered handlers.
package channel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func SetLogger(l *logrus.Logger) {
	log = l
}

// Call is a single request on a channel. Calls carry no payload.
type Call struct {
	Channel string
	Method  string
}

// ErrorPayload is the structured failure returned to the caller.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is exactly one of: a value, an error payload, or not implemented.
type Result struct {
	Value          string        `json:"value,omitempty"`
	Err            *ErrorPayload `json:"error,omitempty"`
	NotImplemented bool          `json:"not_implemented,omitempty"`
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Err == nil && !r.NotImplemented
}

func Success(value string) Result {
	return Result{Value: value}
}

func Failure(code, message string) Result {
	return Result{Err: &ErrorPayload{Code: code, Message: message}}
}

func NotImplemented() Result {
	return Result{NotImplemented: true}
}

// Handler answers calls on one channel.
type Handler interface {
	Handle(ctx context.Context, call Call) Result
}

type HandlerFunc func(ctx context.Context, call Call) Result

func (f HandlerFunc) Handle(ctx context.Context, call Call) Result {
	return f(ctx, call)
}

// Dispatcher routes calls to the handler registered for their channel.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Register binds h to a channel name. Each channel can be bound once.
func (d *Dispatcher) Register(name string, h Handler) error {
	name = strings.TrimSpace(name)
	if name == "" || h == nil {
		return errors.New("invalid channel registration")
	}
	if f, ok := h.(HandlerFunc); ok && f == nil {
		return errors.New("invalid channel registration: nil handler func")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("channel %q already registered", name)
	}
	d.handlers[name] = h
	log.Debugf("Registered channel %s", name)
	return nil
}

// Invoke runs method on the named channel. Unknown channels are reported as
// not implemented.
func (d *Dispatcher) Invoke(ctx context.Context, name, method string) Result {
	d.mu.RLock()
	h, ok := d.handlers[name]
	d.mu.RUnlock()

	if !ok {
		log.Debugf("No handler for channel %s", name)
		return NotImplemented()
	}
	return h.Handle(ctx, Call{Channel: name, Method: method})
}

// Channels returns the registered channel names, sorted.
func (d *Dispatcher) Channels() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
