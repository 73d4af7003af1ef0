/*
Package heirloomtest provides mocks and helpers for testing ledger extensions.

Nothing in this package should be imported by production code.
*/
package heirloomtest
