/*
Package errors implements the error categories used across heirloom.

Every failure returned by a handler wraps one of the root errors registered in
this package. Root errors carry an ABCI code so that a client can tell an
authorization problem apart from a state or a precondition problem without
parsing the message.

Use Register(code, description) to declare a custom root error during program
startup. Use Wrap/Wrapf or ErrXyz.New/Newf at the point of failure so that a
stack trace is attached once, at the lowest frame.

Formatting:
	%s is just the error message
	%v is the message, same as %s
	%+v is the message followed by the stack trace of the creation point
*/
package errors
