// Package reader loads script source.
package reader

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/ztrue/tracerr"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

func ReadSource(from string) (string, error) {
	if from == Stdin {
		return ReadFrom(os.Stdin)
	}

	data, err := ioutil.ReadFile(from)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}

func ReadFrom(r io.Reader) (string, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}
