package x

import (
	"github.com/heirloom-labs/heirloom"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// x/auth for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled, you may want
	// GetAddresses helper.
	GetConditions(heirloom.Context) []heirloom.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(heirloom.Context, heirloom.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators, without
// duplicates.
func (m MultiAuth) GetConditions(ctx heirloom.Context) []heirloom.Condition {
	var res []heirloom.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this.
func (m MultiAuth) HasAddress(ctx heirloom.Context, addr heirloom.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator.
func GetAddresses(ctx heirloom.Context, auth Authenticator) []heirloom.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]heirloom.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx heirloom.Context, auth Authenticator) heirloom.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// AnySigner returns the address of the main signer or an unauthorized error
// if the transaction is not signed.
func AnySigner(ctx heirloom.Context, auth Authenticator) (heirloom.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errUnsigned
	}
	return signer.Address(), nil
}

// HasAllAddresses returns true if all elements in required are also in
// context.
func HasAllAddresses(ctx heirloom.Context, auth Authenticator, required []heirloom.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in requested are also in
// context.
func HasNAddresses(ctx heirloom.Context, auth Authenticator, required []heirloom.Address, n int) bool {
	if n <= 0 {
		return true
	}
	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}

func hasCondition(conds []heirloom.Condition, c heirloom.Condition) bool {
	for _, have := range conds {
		if have.Equals(c) {
			return true
		}
	}
	return false
}
