//go:build !unix

package launch

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

func socketPair() (io.ReadWriteCloser, *os.File, error) {
	return nil, nil, errors.New("ipc transport is not supported on this platform")
}
