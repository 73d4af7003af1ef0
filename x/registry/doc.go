/*
Package registry implements the asset registry: the book of who holds how
much of which asset.

The succession engines never touch balances directly. They consume the
narrow Registry interface (balance lookup, blanket operator authorization,
transfer and holder enumeration), so any book keeping implementation can be
plugged in. Controller is the implementation backed by the ledger store.

Holdings are keyed by holder address followed by the asset ID. Each asset
keeps a list of the identities that held it, in order of first acquisition.
An entry stays on the list after its balance drops to zero, so users of
Holders must check the current balance themselves. At most MaxHolders
identities can hold a positive balance at once: when the list is full, the
entries with a zero balance are dropped to make room for a new holder.
*/
package registry
