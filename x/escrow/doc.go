/*
Package escrow implements the escrow vault.

> An escrow is a financial arrangement where a third party holds and regulates
> payment of the funds required for two parties involved in a given transaction.

Here the third party is the ledger itself. Each escrow holds a single asset
share on a custodian address derived from the escrow ID, so no key exists
that could move it. The share is released to the beneficiary only once the
unlock time is reached, and the escrow is removed on release.

The vault has no messages of its own. Extensions (the will engine) deposit
into and release from it through the Vault controller.
*/
package escrow
