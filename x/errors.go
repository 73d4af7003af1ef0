package x

import "github.com/heirloom-labs/heirloom/errors"

var errUnsigned = errors.Wrap(errors.ErrUnauthorized, "transaction not signed")
