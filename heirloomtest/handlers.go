package heirloomtest

import "github.com/heirloom-labs/heirloom"

// Handler is a mock implementation of the heirloom.Handler interface.
//
// Each method call is counted. Set CheckErr or DeliverErr to force an error
// response.
type Handler struct {
	checkCall   int
	CheckResult heirloom.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult heirloom.DeliverResult
	DeliverErr    error
}

var _ heirloom.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes Key and Value to the store on every call and then
// returns Err. It is useful to test that a failing operation leaves no trace
// in the store.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ heirloom.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &heirloom.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &heirloom.DeliverResult{}, nil
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ heirloom.Handler = PanicHandler{}

func (h PanicHandler) Check(heirloom.Context, heirloom.KVStore, heirloom.Tx) (*heirloom.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(heirloom.Context, heirloom.KVStore, heirloom.Tx) (*heirloom.DeliverResult, error) {
	panic(h.Msg)
}
