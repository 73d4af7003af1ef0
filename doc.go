/*
Package heirloom defines the interfaces shared by every part of the ledger:
storage, transactions, messages, handlers and decorators. It also contains the
identity types (Condition and Address), the block context helpers and the
conversion of handler results into ABCI responses.

Extensions live under x/. The succession engine (x/will), the whole asset
consensus engine (x/consensus), the escrow vault (x/escrow) and the liveness
tracker (x/liveness) all operate on the asset book held by x/registry.
*/
package heirloom
