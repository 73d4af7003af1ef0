// Package crypto maps identity keys onto conditions and addresses.
//
// The ledger trusts the ordering layer to authenticate the declared signer of
// a transaction. Keys exist so that operators and tests can derive stable,
// collision free identities.
package crypto
