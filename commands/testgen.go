package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      heirloom.Marshaller
}

// TestGenCmd generates sample amino binary and json encodings of various
// objects, for clients to test their own encoders against.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	for _, ex := range examples {
		js, err := codec.MarshalJSON(ex.Obj)
		if err != nil {
			return errors.Wrap(err, ex.Filename)
		}
		jsFile := filepath.Join(outdir, ex.Filename+".json")
		if err := ioutil.WriteFile(jsFile, js, 0644); err != nil {
			return errors.Wrap(err, jsFile)
		}

		bin, err := ex.Obj.Marshal()
		if err != nil {
			return errors.Wrap(err, ex.Filename)
		}
		binFile := filepath.Join(outdir, ex.Filename+".bin")
		if err := ioutil.WriteFile(binFile, bin, 0644); err != nil {
			return errors.Wrap(err, binFile)
		}
	}
	return nil
}
