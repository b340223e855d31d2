//go:build unix

package launch

import (
	"io"
	"net"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// socketPair returns the parent connection and the child's end, which the
// caller passes as the child's fd 3.
func socketPair() (io.ReadWriteCloser, *os.File, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, nil, errors.Wrap(err, "socketpair")
	}
	parentFile := os.NewFile(uintptr(fds[0]), "ipc-parent")
	child := os.NewFile(uintptr(fds[1]), "ipc-child")

	conn, err := net.FileConn(parentFile)
	// FileConn dups the descriptor.
	_ = parentFile.Close()
	if err != nil {
		_ = child.Close()
		return nil, nil, errors.Wrap(err, "ipc conn")
	}
	return conn, child, nil
}
