package launcher_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lithic-lang/lithic/mods/launcher"
	"github.com/lithic-lang/lithic/mods/stream"
	"github.com/stretchr/testify/require"
)

// echoProgram copies its input to its output and exits with a fixed
// code, recording how it was invoked.
type echoProgram struct {
	calls    int
	exitCode int
	sawIn    io.Reader
	sawOut   io.Writer
}

func (p *echoProgram) Exec(ctx context.Context, in io.Reader, out io.Writer) (int, error) {
	p.calls++
	p.sawIn = in
	p.sawOut = out
	if _, err := io.Copy(out, in); err != nil {
		return -1, err
	}
	return p.exitCode, nil
}

func TestLaunchRunsExactlyOnce(t *testing.T) {
	sb := &strings.Builder{}
	l := launcher.NewWithStreams(
		&stream.ReaderInputStream{Reader: strings.NewReader("payload")},
		&stream.WriterOutputStream{Writer: sb},
	)
	prog := &echoProgram{}

	code, err := l.Launch(context.Background(), prog)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, 1, prog.calls)
	// bytes pass through unmodified
	require.Equal(t, "payload", sb.String())

	_, err = l.Launch(context.Background(), prog)
	require.Error(t, err)
	require.Equal(t, 1, prog.calls)
	require.NoError(t, l.Close())
}

func TestLaunchBindsStreamsBeforeInvocation(t *testing.T) {
	in := &stream.ReaderInputStream{Reader: strings.NewReader("")}
	out := &stream.WriterOutputStream{Writer: &strings.Builder{}}
	l := launcher.NewWithStreams(in, out)
	prog := &echoProgram{}

	_, err := l.Launch(context.Background(), prog)
	require.NoError(t, err)
	// the program sees exactly the streams the launcher was bound to
	require.Same(t, in, prog.sawIn.(*stream.ReaderInputStream))
	require.Same(t, out, prog.sawOut.(*stream.WriterOutputStream))
}

func TestLaunchPropagatesExitCode(t *testing.T) {
	l := launcher.NewWithStreams(
		&stream.ReaderInputStream{Reader: strings.NewReader("")},
		&stream.WriterOutputStream{Writer: &strings.Builder{}},
	)
	code, err := l.Launch(context.Background(), &echoProgram{exitCode: 3})
	require.NoError(t, err)
	require.Equal(t, 3, code)
}

func TestLaunchWithNamedStreams(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.txt")
	outPath := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(inPath, []byte("file payload"), 0644))

	l, err := launcher.New(inPath, outPath)
	require.NoError(t, err)

	code, err := l.Launch(context.Background(), &echoProgram{})
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.NoError(t, l.Close())

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "file payload", string(content))
}

func TestNewMissingInput(t *testing.T) {
	_, err := launcher.New(filepath.Join(t.TempDir(), "absent"), "-")
	require.Error(t, err)
}
