package app

import (
	"reflect"

	"github.com/heirloom-labs/heirloom"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler.
type Decorators struct {
	chain []heirloom.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    auth.NewDecorator(),
    utils.NewSavepoint().OnCheck().OnDeliver(),
  ).WithHandler(
    myapp.NewRouter(),
  )
*/
func ChainDecorators(chain ...heirloom.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain. Nil values
// are ignored.
func (d Decorators) Chain(chain ...heirloom.Decorator) Decorators {
	newChain := make([]heirloom.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	for _, dec := range chain {
		if isNil(dec) {
			continue
		}
		newChain = append(newChain, dec)
	}
	return Decorators{newChain}
}

func isNil(d heirloom.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler that will
// pass through all the decorators in order.
func (d Decorators) WithHandler(h heirloom.Handler) heirloom.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step is one step in the chain of decorators, ending in a handler.
type step struct {
	d    heirloom.Decorator
	next heirloom.Handler
}

var _ heirloom.Handler = step{}

func (s step) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
