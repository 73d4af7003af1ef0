package will

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x/utils"
)

// BatchResponse is the outcome of a batch execution, one result per
// pending will of the owner, in creation order.
type BatchResponse struct {
	Results []BatchResult `json:"results"`
}

// BatchResult is the outcome of executing a single will of a batch. Code
// and Error describe the failure of a will that could not be executed.
type BatchResult struct {
	WillID   uint64 `json:"will_id"`
	Executed bool   `json:"executed"`
	Escrowed bool   `json:"escrowed"`
	Code     uint32 `json:"code,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (r *BatchResponse) Marshal() ([]byte, error)  { return codec.Marshal(r) }
func (r *BatchResponse) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, r) }

// Executed returns the number of wills executed by the batch.
func (r *BatchResponse) Executed() int {
	var n int
	for _, res := range r.Results {
		if res.Executed {
			n++
		}
	}
	return n
}

// ExecuteBatch attempts to execute every pending will of the owner. Each
// will is executed in its own savepoint: a failure is reported in the
// response and leaves no trace in the store, but does not stop the batch.
// The returned error is set only if the batch itself could not run.
func (e *Engine) ExecuteBatch(ctx heirloom.Context, db heirloom.KVStore, owner heirloom.Address) (*BatchResponse, []heirloom.Event, error) {
	resp := &BatchResponse{}
	var events []heirloom.Event
	err := e.batchGuard.Run(db, func() error {
		keys, _, err := e.pending(db, owner)
		if err != nil {
			return err
		}
		for _, key := range keys {
			res := BatchResult{WillID: willPosition(key)}
			err := utils.InSavepoint(db, func(kv heirloom.KVStore) error {
				evs, err := e.Execute(ctx, kv, owner, res.WillID)
				if err != nil {
					return err
				}
				for _, ev := range evs {
					if ex, ok := ev.(ExecutedEvent); ok {
						res.Escrowed = ex.Escrowed
					}
				}
				events = append(events, evs...)
				return nil
			})
			if err != nil {
				res.Code, res.Error = errors.ABCIInfo(err, false)
				heirloom.GetLogger(ctx).Debug("batch item failed",
					"owner", owner, "will", res.WillID, "err", err)
			} else {
				res.Executed = true
			}
			resp.Results = append(resp.Results, res)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return resp, events, nil
}
