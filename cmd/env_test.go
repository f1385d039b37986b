// The cmd/ package tests drive the built binary end to end:
// command parsing -> extension -> library service -> store -> SQLite.
// Package-level unit tests cover the tag model and renderers; these tests
// prove the pieces are wired together.

package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the mpdtags binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "mpdtags-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "mpdtags"
		if os.PathSeparator == '\\' {
			binaryName = "mpdtags.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates a temporary directory with an initialised library
// and an empty HOME, so neither user config nor the user's audit log is
// touched.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
	env.run("init")
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "MPDTAGS_DB=", "MPDTAGS_DIR=")
	return cmd
}

// run executes mpdtags with the given args and returns its stdout.
// Diagnostics on stderr are only shown when the command fails.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	return e.runStdin("", args...)
}

// runErr executes mpdtags and returns combined stdout and stderr.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes mpdtags with stdin input and returns its stdout.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		e.t.Fatalf("mpdtags %v failed: %v\nstdout: %s\nstderr: %s", args, err, stdout.String(), stderr.String())
	}
	return stdout.String()
}

// writeFile writes content to a file in the test directory.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		e.t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// testListing is a captured listallinfo response covering multi-valued
// tags, a MusicBrainz ID list, a song without a title and a directory.
const testListing = `directory: jazz
file: jazz/so-what.flac
Last-Modified: 2024-01-15T10:30:00Z
Format: 44100:16:2
Artist: Miles Davis
Artist: John Coltrane
Album: Kind of Blue
Title: So What
Genre: Jazz
Date: 1959
Time: 545
duration: 545.123
MUSICBRAINZ_ARTISTID: 561d854a; b9a2d8b3
file: jazz/untitled_take.mp3
Artist: Bill Evans
Time: 60
directory: rock
file: rock/paranoid.mp3
Artist: Black Sabbath
Title: Paranoid
Genre: Metal
Genre: Metal
Composer: Tony Iommi
Time: 168
OK
`
