package paysplit

import (
	"context"
	"fmt"

	"github.com/tendermint/tendermint/libs/common"
)

// Event is an observable notification emitted by a successfully executed
// operation. Events are only published when the operation that emitted them
// is committed.
type Event struct {
	Kind       string
	Attributes []common.KVPair
}

// NewEvent returns an event of given kind. Attributes are given as key,
// value pairs. Values are formatted using fmt.Sprint, so any type
// implementing the fmt.Stringer interface (ie. Address) is represented in
// its human readable form.
func NewEvent(kind string, keyvals ...interface{}) Event {
	if len(keyvals)%2 != 0 {
		panic("event attributes must be given as key, value pairs")
	}
	ev := Event{Kind: kind}
	for i := 0; i < len(keyvals); i += 2 {
		ev.Attributes = append(ev.Attributes, common.KVPair{
			Key:   []byte(fmt.Sprint(keyvals[i])),
			Value: []byte(fmt.Sprint(keyvals[i+1])),
		})
	}
	return ev
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if string(a.Key) == key {
			return string(a.Value), true
		}
	}
	return "", false
}

// Tags flattens the event into a list of tags. Each attribute key is
// prefixed with the event kind.
func (e Event) Tags() []common.KVPair {
	tags := make([]common.KVPair, 0, len(e.Attributes))
	for _, a := range e.Attributes {
		tags = append(tags, common.KVPair{
			Key:   []byte(e.Kind + "." + string(a.Key)),
			Value: a.Value,
		})
	}
	return tags
}

// EventLog collects events emitted during a single operation execution.
// A zero value is ready to use.
type EventLog struct {
	events []Event
}

// Emit appends given event to the log.
func (l *EventLog) Emit(e Event) {
	l.events = append(l.events, e)
}

// Events returns all events emitted so far, in emission order.
func (l *EventLog) Events() []Event {
	return l.events
}

// Len returns the number of collected events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// Rollback drops all events collected after given length. Use it together
// with Len to discard events of an operation that was reverted.
func (l *EventLog) Rollback(n int) {
	if n < len(l.events) {
		l.events = l.events[:n]
	}
}

// WithEventLog attaches an event log to the context. All events emitted
// using this context end up in the log.
func WithEventLog(ctx Context, l *EventLog) Context {
	return context.WithValue(ctx, contextKeyEvents, l)
}

// GetEventLog returns the event log attached to the context, if any.
func GetEventLog(ctx Context) (*EventLog, bool) {
	l, ok := ctx.Value(contextKeyEvents).(*EventLog)
	return l, ok
}

// Emit publishes an event using the event log attached to the context.
// If there is no event log the event is dropped.
func Emit(ctx Context, e Event) {
	if l, ok := GetEventLog(ctx); ok {
		l.Emit(e)
	}
}
