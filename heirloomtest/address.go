package heirloomtest

import (
	"testing"

	"github.com/heirloom-labs/heirloom"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// heirloom.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) heirloom.Address {
	t.Helper()

	addr, err := heirloom.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
