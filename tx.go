package heirloom

import (
	"reflect"
	"regexp"

	"github.com/heirloom-labs/heirloom/errors"
)

// Msg is message for the ledger to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path. This is used by the Router to locate
	// the proper Handler. Msg should be created alongside the Handler that
	// corresponds to them.
	//
	// Must be in the form <extension>/<action>, for example
	// "will/create".
	Path() string

	// Validate performs a sanity check of the message content. It does not
	// read the state.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as this almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represent the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the sender,
// and anything else needed to pass through decorators.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

var isValidPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning the message is validated. The destination
// must be a pointer to the expected message type.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "transaction without message")
	}
	if !isValidPath(msg.Path()) {
		return errors.Wrapf(errors.ErrMsg, "invalid message path %q", msg.Path())
	}
	if err := assignMsg(msg, destination); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// assignMsg sets the value of msg into destination. Destination must be a
// pointer to a value of the same type as msg.
func assignMsg(msg Msg, destination interface{}) error {
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	// Messages are usually delivered as pointers, but the destination
	// may as well be a pointer to a pointer.
	if src.Type() == dst.Elem().Type() {
		dst.Elem().Set(src)
		return nil
	}
	if src.Kind() == reflect.Ptr && src.Elem().Type() == dst.Elem().Type() {
		dst.Elem().Set(src.Elem())
		return nil
	}
	return errors.Wrapf(errors.ErrType, "want %s message, got %T", dst.Elem().Type(), msg)
}
