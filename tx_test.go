package heirloom

import (
	"testing"

	"github.com/heirloom-labs/heirloom/errors"
)

type testMsg struct {
	path  string
	valid bool
}

func (m *testMsg) Marshal() ([]byte, error) { return []byte(m.path), nil }
func (m *testMsg) Unmarshal(b []byte) error { m.path = string(b); return nil }
func (m *testMsg) Path() string             { return m.path }
func (m *testMsg) Validate() error {
	if !m.valid {
		return errors.ErrEmpty
	}
	return nil
}

type otherMsg struct{ testMsg }

type testTx struct {
	msg Msg
	err error
}

func (tx *testTx) Marshal() ([]byte, error) { return nil, nil }
func (tx *testTx) Unmarshal([]byte) error   { return nil }
func (tx *testTx) GetMsg() (Msg, error)     { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dst     interface{}
		wantErr *errors.Error
	}{
		"valid message into value": {
			tx:  &testTx{msg: &testMsg{path: "test/do", valid: true}},
			dst: &testMsg{},
		},
		"valid message into pointer": {
			tx:  &testTx{msg: &testMsg{path: "test/do", valid: true}},
			dst: new(*testMsg),
		},
		"invalid message": {
			tx:      &testTx{msg: &testMsg{path: "test/do"}},
			dst:     &testMsg{},
			wantErr: errors.ErrEmpty,
		},
		"missing message": {
			tx:      &testTx{},
			dst:     &testMsg{},
			wantErr: errors.ErrEmpty,
		},
		"bad path": {
			tx:      &testTx{msg: &testMsg{path: "Test Do", valid: true}},
			dst:     &testMsg{},
			wantErr: errors.ErrMsg,
		},
		"wrong type": {
			tx:      &testTx{msg: &testMsg{path: "test/do", valid: true}},
			dst:     &otherMsg{},
			wantErr: errors.ErrType,
		},
		"destination not a pointer": {
			tx:      &testTx{msg: &testMsg{path: "test/do", valid: true}},
			dst:     testMsg{},
			wantErr: errors.ErrHuman,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := LoadMsg(tc.tx, tc.dst); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	if got := GetPath(&testTx{}); got != "(missing)" {
		t.Fatalf("unexpected path: %q", got)
	}
	if got := GetPath(&testTx{msg: &testMsg{path: "will/create"}}); got != "will/create" {
		t.Fatalf("unexpected path: %q", got)
	}
}
