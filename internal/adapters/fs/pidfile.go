// Package fs holds the filesystem adapters: the single-instance pidfile and
// the airframe profile watcher.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/bft-labs/stickmap/internal/domain"
)

// PIDFile guards a process against a second live instance.
type PIDFile struct {
	path string
	pid  int
}

// AcquirePIDFile writes the current pid to path. It fails with
// domain.ErrInstanceRunning when the file names a process that is still alive.
// A stale or unreadable file is replaced.
func AcquirePIDFile(path string) (*PIDFile, error) {
	if pid, ok := readPID(path); ok && pid != os.Getpid() && processAlive(pid) {
		return nil, fmt.Errorf("%w: pid %d (%s)", domain.ErrInstanceRunning, pid, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	pid := os.Getpid()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, err
	}
	return &PIDFile{path: path, pid: pid}, nil
}

// Path returns the pidfile location.
func (p *PIDFile) Path() string {
	return p.path
}

// Release removes the pidfile if it still holds our pid.
func (p *PIDFile) Release() error {
	if pid, ok := readPID(p.path); ok && pid != p.pid {
		return nil
	}
	err := os.Remove(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func readPID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// processAlive reports whether a signal could be delivered to pid.
// EPERM means the process exists but belongs to someone else.
func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
