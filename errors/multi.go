package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are provided or all provided errors are nil, Append returns
// nil.
// If exactly one error is provided (ignoring nils), this error is returned
// as it is.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// unpacker is implemented by errors that group together other errors.
type unpacker interface {
	Unpack() []error
}

// multiErr represents a group of errors. It is created by Append and never
// holds nil values.
type multiErr []error

var _ unpacker = (multiErr)(nil)

func (m multiErr) Error() string {
	if len(m) == 1 {
		return m[0].Error()
	}
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n",
		len(m), strings.Join(points, "\n\t"))
}

// Unpack returns all errors this group consists of.
func (m multiErr) Unpack() []error {
	return m
}

// ABCICode returns the code of the first error consistent with fail-fast
// approach.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}
