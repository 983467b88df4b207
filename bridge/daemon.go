package bridge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// PidFile tracks the process serving an endpoint.
type PidFile struct {
	fs  afs.Service
	URL string
}

// Write records pid.
func (p *PidFile) Write(ctx context.Context, pid int) error {
	return p.fs.Upload(ctx, p.URL, 0644, bytes.NewReader([]byte(strconv.Itoa(pid))))
}

// Read returns the recorded pid.
func (p *PidFile) Read(ctx context.Context) (int, error) {
	ok, err := p.fs.Exists(ctx, p.URL)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("no running bridge: %v not found", p.URL)
	}
	data, err := p.fs.DownloadWithURL(ctx, p.URL)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid pid file %v: %w", p.URL, err)
	}
	return pid, nil
}

// Remove deletes the pid file.
func (p *PidFile) Remove(ctx context.Context) error {
	ok, err := p.fs.Exists(ctx, p.URL)
	if err != nil || !ok {
		return err
	}
	return p.fs.Delete(ctx, p.URL)
}

// NewPidFile returns the pid file of endpointID under runURL.
func NewPidFile(runURL, endpointID string) *PidFile {
	if runURL == "" {
		runURL = DefaultRunURL()
	}
	return &PidFile{fs: afs.New(), URL: url.Join(runURL, endpointID+".pid")}
}

// daemonize re-executes the current binary in the background without the daemon flag.
func daemonize(args []string) (int, error) {
	executable, err := os.Executable()
	if err != nil {
		return 0, err
	}
	var childArgs []string
	for _, arg := range args {
		switch arg {
		case "-d", "--daemon":
			continue
		}
		childArgs = append(childArgs, arg)
	}
	cmd := exec.Command(executable, childArgs...)
	cmd.Env = os.Environ()
	if err = cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start daemon: %w", err)
	}
	pid := cmd.Process.Pid
	return pid, cmd.Process.Release()
}

// stop signals the process recorded in the pid file.
func stop(ctx context.Context, pidFile *PidFile) (int, error) {
	pid, err := pidFile.Read(ctx)
	if err != nil {
		return 0, err
	}
	process, err := os.FindProcess(pid)
	if err == nil {
		err = process.Signal(syscall.SIGTERM)
	}
	if err != nil {
		_ = pidFile.Remove(ctx)
		return pid, fmt.Errorf("failed to stop bridge %v: %w", pid, err)
	}
	return pid, pidFile.Remove(ctx)
}
