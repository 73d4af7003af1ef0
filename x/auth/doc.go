/*
Package auth establishes who signed a transaction.

A transaction declares the condition of its signer. The ordering layer that
feeds the ledger is responsible for verifying the signature; this package
only carries the declared signer into the context, where handlers read it
back through the x.Authenticator implementation provided here.
*/
package auth
