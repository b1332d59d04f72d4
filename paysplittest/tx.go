package paysplittest

import "github.com/iov-one/paysplit"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg paysplit.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ paysplit.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (paysplit.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message that is routed by its path.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ paysplit.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
