package exec

import (
	"bytes"
	"fmt"
	osexec "os/exec"
	"strings"
)

// Runner executes an already-interpolated command string and returns its
// stdout. The translator owns the ${...} substitution protocol; the runner
// owns process mechanics. Execution blocks the calling pass until the
// subprocess completes.
type Runner interface {
	Run(command string) (string, error)
}

// OSRunner runs commands through the system shell.
type OSRunner struct {
	Shell string // defaults to /bin/sh
}

func (r *OSRunner) Run(command string) (string, error) {
	shell := r.Shell
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := osexec.Command(shell, "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("command %q failed: %s", command, msg)
	}
	// command-substitution convention: strip one trailing newline
	return strings.TrimSuffix(stdout.String(), "\n"), nil
}

// FakeRunner records commands and replays canned outputs; used by tests to
// keep elaboration hermetic.
type FakeRunner struct {
	Outputs map[string]string // command -> stdout
	Err     error             // returned for every call when set
	Calls   []string
}

func (r *FakeRunner) Run(command string) (string, error) {
	r.Calls = append(r.Calls, command)
	if r.Err != nil {
		return "", r.Err
	}
	if out, ok := r.Outputs[command]; ok {
		return out, nil
	}
	return "", nil
}
