package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// ErrUnknownAction is returned when no handler is registered for an action.
// Unknown actions get an explicit error reply instead of a silent drop.
var ErrUnknownAction = errors.New("unknown action")

// DefaultErrorQueue receives error replies when no handler claimed the
// action (so no per-handler error queue applies).
const DefaultErrorQueue = "/queue/error"

// HandlerFunc processes one inbound payload. A returned error becomes a
// uniform ErrorReply on the requester's error queue; handlers never write
// errors to broadcast topics themselves.
type HandlerFunc func(payload json.RawMessage) error

type handlerEntry struct {
	fn         HandlerFunc
	errorQueue string
}

// Dispatcher maps action names to typed handlers. This replaces the
// string-switch of the original with a registration table.
type Dispatcher struct {
	publisher Publisher
	handlers  map[string]handlerEntry
}

func NewDispatcher(publisher Publisher) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		handlers:  make(map[string]handlerEntry),
	}
}

// Register binds an action to a handler and the queue its failures are
// reported on. Registering the same action twice is a programming error.
func (d *Dispatcher) Register(action, errorQueue string, fn HandlerFunc) {
	if _, dup := d.handlers[action]; dup {
		panic(fmt.Sprintf("realtime: action %q registered twice", action))
	}
	d.handlers[action] = handlerEntry{fn: fn, errorQueue: errorQueue}
}

// requesterOf pulls the self-reported requester identifier out of a
// payload, defaulting to "0" like the source did.
func requesterOf(payload json.RawMessage) string {
	var probe struct {
		RequesterID string `json:"requesterId"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || probe.RequesterID == "" {
		return "0"
	}
	return probe.RequesterID
}

// Dispatch runs the handler for an action. Every failure — unknown action,
// malformed payload, service error — collapses into one recovery policy:
// a success=false reply to the requester's queue. Nothing is retried and
// nothing escalates past the handler boundary.
func (d *Dispatcher) Dispatch(action string, payload json.RawMessage) {
	entry, ok := d.handlers[action]
	if !ok {
		log.Printf("⚠️ realtime: %v: %s", ErrUnknownAction, action)
		d.publisher.SendToUser(requesterOf(payload), DefaultErrorQueue, ErrorReply{
			Success: false,
			Message: fmt.Sprintf("%v: %s", ErrUnknownAction, action),
		})
		return
	}

	if err := entry.fn(payload); err != nil {
		log.Printf("❌ realtime: action %s failed: %v", action, err)
		d.publisher.SendToUser(requesterOf(payload), entry.errorQueue, ErrorReply{
			Success: false,
			Message: err.Error(),
		})
	}
}
