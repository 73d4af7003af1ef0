package utils

import (
	"fmt"
	"regexp"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
)

var isGuardName = regexp.MustCompile(`^[a-z_]+(/[a-z_]+)?$`).MatchString

// ReentrancyGuard protects a mutating entry point from being called again
// while it is running. The lock is a key held in the store for the
// duration of the call, so that it is visible to any code called from the
// guarded function, whatever store wrap it uses.
type ReentrancyGuard struct {
	key []byte
}

// NewReentrancyGuard returns a guard for the entry point of given name.
// Each entry point must use a distinct name.
func NewReentrancyGuard(name string) ReentrancyGuard {
	if !isGuardName(name) {
		panic(fmt.Sprintf("illegal guard name: %q", name))
	}
	return ReentrancyGuard{key: []byte("_lock:" + name)}
}

// Run executes fn while holding the lock. ErrReentrancy is returned if the
// lock is already held.
func (g ReentrancyGuard) Run(db heirloom.KVStore, fn func() error) error {
	switch held, err := db.Has(g.key); {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case held:
		return errors.Wrapf(errors.ErrReentrancy, "%s", g.key[len("_lock:"):])
	}
	if err := db.Set(g.key, []byte{1}); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	fnErr := fn()
	if err := db.Delete(g.key); err != nil && fnErr == nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return fnErr
}
