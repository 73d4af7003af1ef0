package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/heirloom-labs/heirloom/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count uint32 `json:"count"`
}

func (s *sample) Marshal() ([]byte, error) { return codec.Marshal(s) }

func TestTestGenCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "testgen")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	obj := &sample{Name: "house", Count: 3}
	err = TestGenCmd([]Example{{Filename: "sample", Obj: obj}}, []string{dir})
	require.NoError(t, err)

	js, err := ioutil.ReadFile(filepath.Join(dir, "sample.json"))
	require.NoError(t, err)
	var fromJSON sample
	require.NoError(t, codec.UnmarshalJSON(js, &fromJSON))
	assert.Equal(t, *obj, fromJSON)

	bin, err := ioutil.ReadFile(filepath.Join(dir, "sample.bin"))
	require.NoError(t, err)
	var fromBin sample
	require.NoError(t, codec.Unmarshal(bin, &fromBin))
	assert.Equal(t, *obj, fromBin)
}
