/*
Package std wires the extensions of the payout splitter into a single
application.

It is a good place to see how the various components are put together:
the authentication and decorator chain, the router, the transaction codec,
the genesis initializers and the persistent store.
*/
package std

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/app"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store/iavl"
	"github.com/iov-one/paysplit/x"
	"github.com/iov-one/paysplit/x/cash"
	"github.com/iov-one/paysplit/x/sigs"
	"github.com/iov-one/paysplit/x/splitter"
	"github.com/iov-one/paysplit/x/token"
	"github.com/tendermint/tendermint/libs/log"
)

// Controllers holds the extension controllers of an application. Token
// transfers with a call are forwarded to the splitter controller.
type Controllers struct {
	Cash      cash.Controller
	Tokens    *token.Controller
	Splitters *splitter.Controller
}

// NewControllers returns controllers connected with each other.
func NewControllers() Controllers {
	c := Controllers{
		Cash:   cash.NewController(),
		Tokens: token.NewController(),
	}
	c.Splitters = splitter.NewController(c.Cash, c.Tokens)
	c.Tokens.AddReceiver(splitter.NewTokenReceiver(c.Splitters))
	return c
}

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle logging, recovery and
// signature verification.
func Chain() app.Decorators {
	return app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching to all extensions.
func Router(auth x.Authenticator, c Controllers) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, c.Cash)
	token.RegisterRoutes(r, auth, c.Tokens)
	splitter.RegisterRoutes(r, auth, c.Splitters)
	return r
}

// Stack wires up the router with the decorator chain.
func Stack(c Controllers) paysplit.Handler {
	return Chain().WithHandler(Router(Authenticator(), c))
}

// Codec returns a codec that knows every message handled by the Router.
func Codec() *app.Codec {
	c := app.NewCodec()
	c.Register(
		&cash.SendMsg{},

		&token.CreateMsg{},
		&token.TransferMsg{},
		&token.TransferAndCallMsg{},

		&splitter.CreateTemplateMsg{},
		&splitter.CreateFactoryMsg{},
		&splitter.CreateSplitterMsg{},
		&splitter.AddRecipientMsg{},
		&splitter.RemoveRecipientMsg{},
		&splitter.SplitMsg{},
		&splitter.SplitTokensMsg{},
		&splitter.ProposeOwnerMsg{},
		&splitter.ClaimOwnershipMsg{},
	)
	return c
}

// Initializers returns an initializer loading the genesis state of every
// extension. Splitters are initialized last so that they can be given
// recipients of any kind.
func Initializers() paysplit.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		token.Initializer{},
		splitter.Initializer{},
	)
}

// Application returns an executor running the standard stack on top of
// given store. Metrics are registered with the default prometheus
// registry.
func Application(kv paysplit.CommitKVStore, logger log.Logger, debug bool) (*app.Executor, Controllers, error) {
	splitter.RegisterMetrics()
	c := NewControllers()
	exec, err := app.NewExecutor(kv, Stack(c), Codec(), logger, debug)
	if err != nil {
		return nil, c, err
	}
	return exec, c, nil
}

// CommitKVStore returns an initialized store that persists the data to the
// named path. An empty path returns a memory backed store.
func CommitKVStore(dbPath string) (*iavl.CommitStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
