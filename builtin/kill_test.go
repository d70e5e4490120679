package builtin

import (
	"bytes"
	"os/exec"
	"strconv"
	"testing"

	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/symtab"
)

func TestKillUnknownSignal(t *testing.T) {
	var errBuf bytes.Buffer
	streams := command.Streams{In: bytes.NewReader(nil), Out: &bytes.Buffer{}, Err: &errBuf}

	status := kill(symtab.NewStack(), streams, []string{"kill", "-notasignal", "1"})
	if status != 1 {
		t.Fatalf("got status %d, want 1", status)
	}
	if errBuf.Len() == 0 {
		t.Fatal("expected an error message about the unknown signal")
	}
}

func TestKillNoTargets(t *testing.T) {
	var errBuf bytes.Buffer
	streams := command.Streams{In: bytes.NewReader(nil), Out: &bytes.Buffer{}, Err: &errBuf}

	if status := kill(symtab.NewStack(), streams, []string{"kill"}); status != 1 {
		t.Fatalf("got status %d, want 1", status)
	}
}

func TestKillSignalsRealProcess(t *testing.T) {
	proc := exec.Command("sleep", "5")
	if err := proc.Start(); err != nil {
		t.Skipf("cannot start helper process: %s", err)
	}
	defer proc.Process.Kill()

	var errBuf bytes.Buffer
	streams := command.Streams{In: bytes.NewReader(nil), Out: &bytes.Buffer{}, Err: &errBuf}
	pid := strconv.Itoa(proc.Process.Pid)

	status := kill(symtab.NewStack(), streams, []string{"kill", "-sigterm", pid})
	if status != 0 {
		t.Fatalf("got status %d, want 0: %s", status, errBuf.String())
	}

	state, err := proc.Process.Wait()
	if err != nil {
		t.Fatalf("wait: %s", err)
	}
	if state.Exited() && state.ExitCode() == 0 {
		t.Fatal("expected the process to have been terminated by a signal")
	}
}
