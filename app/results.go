package app

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
)

// ResultSet holds the keys or the values of a query response.
type ResultSet struct {
	Results []Result `json:"results"`
}

// Result is a single key or value of a query response.
type Result struct {
	Data []byte `json:"data"`
}

var _ heirloom.Persistent = (*ResultSet)(nil)

func (r *ResultSet) Marshal() ([]byte, error) { return codec.Marshal(r) }

// Unmarshal accepts empty input as an empty set, which is how a set without
// results is serialized.
func (r *ResultSet) Unmarshal(bz []byte) error {
	if len(bz) == 0 {
		r.Results = nil
		return nil
	}
	return codec.Unmarshal(bz, r)
}

// ResultsFromKeys returns a ResultSet of all keys given a set of models.
func ResultsFromKeys(models []heirloom.Model) *ResultSet {
	res := make([]Result, len(models))
	for i, m := range models {
		res[i] = Result{Data: m.Key}
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values given a set of
// models.
func ResultsFromValues(models []heirloom.Model) *ResultSet {
	res := make([]Result, len(models))
	for i, m := range models {
		res[i] = Result{Data: m.Value}
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues and makes them a
// consistent whole again.
func JoinResults(keys, values *ResultSet) ([]heirloom.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys, %d values", len(kref), len(vref))
	}
	models := make([]heirloom.Model, len(kref))
	for i := range models {
		models[i] = heirloom.Pair(kref[i].Data, vref[i].Data)
	}
	return models, nil
}

// UnmarshalOneResult will parse a result set, and if it is not empty,
// unmarshal the first result into o.
func UnmarshalOneResult(bz []byte, o heirloom.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0].Data)
}
