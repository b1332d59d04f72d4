package paysplit

import (
	"encoding/json"
	"reflect"

	"github.com/iov-one/paysplit/errors"
)

// Handler is a core engine that can process a few specific messages.
// This could represent "add a recipient", or "split collected funds".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// Check must not alter the state in any way that is observed once the
// check is finished.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication or panic recovery, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// CheckResult captures any non-error result of a check.
type CheckResult struct {
	// Log is human-readable informational string.
	Log string
	// GasAllocated is the amount of operations this transaction is
	// expected to cost. It is informational only.
	GasAllocated int64
}

// DeliverResult captures any non-error result of a delivery.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the address of a
	// newly created splitter.
	Data []byte
	// Log is human-readable informational string.
	Log string
}

// Registry is an interface to register your handler, the setup side of a
// Router.
type Registry interface {
	Handle(path string, h Handler)
}

// Msg is message for the application to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	// Path returns the message path. This is used by the Router to locate
	// the proper Handler.
	Path() string

	// Validate performs a sanity checks of the message content. It does
	// not require access to the state.
	Validate() error
}

// Tx represent the data sent by the user. It includes the actual message,
// along with information needed to authenticate the sender.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// Options are the app options. Each extension can look up it's key and
// parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the
// json into the given obj. Returns an error if it cannot parse. Noop and no
// error if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from genesis
// file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning, message validation is called.
//
// Destination must be a pointer to the message type:
//
//   var msg SplitMsg
//   if err := paysplit.LoadMsg(tx, &msg); err != nil {
//           return err
//   }
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dest.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	dest.Elem().Set(src)
	return nil
}
