// Package launcher binds a program's input and output streams once at
// startup and runs the program exactly once against them.
package launcher

import (
	"context"
	"errors"
	"io"

	"github.com/lithic-lang/lithic/mods/logging"
	"github.com/lithic-lang/lithic/mods/stream"
	"github.com/lithic-lang/lithic/mods/stream/spec"
)

// Executable produces a result on out from in and reports the process
// exit code.
type Executable interface {
	Exec(ctx context.Context, in io.Reader, out io.Writer) (int, error)
}

type Launcher struct {
	in       spec.InputStream
	out      spec.OutputStream
	log      logging.Log
	launched bool
}

// New binds the named input and output before any program runs. "-"
// selects the process stdin or stdout.
func New(input, output string) (*Launcher, error) {
	in, err := stream.NewInputStream(input)
	if err != nil {
		return nil, err
	}
	out, err := stream.NewOutputStream(output)
	if err != nil {
		in.Close()
		return nil, err
	}
	return NewWithStreams(in, out), nil
}

// NewWithStreams binds already opened streams.
func NewWithStreams(in spec.InputStream, out spec.OutputStream) *Launcher {
	return &Launcher{
		in:  in,
		out: out,
		log: logging.GetLog("launcher"),
	}
}

// Launch runs the executable once with the bound streams and returns
// its exit code. A launcher cannot be reused.
func (l *Launcher) Launch(ctx context.Context, exe Executable) (int, error) {
	if l.launched {
		return -1, errors.New("launcher already used")
	}
	l.launched = true

	code, err := exe.Exec(ctx, l.in, l.out)
	if flushErr := l.out.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	if err != nil {
		return code, err
	}
	l.log.Tracef("program exited with code %d", code)
	return code, nil
}

// Close releases both streams.
func (l *Launcher) Close() error {
	inErr := l.in.Close()
	outErr := l.out.Close()
	if inErr != nil {
		return inErr
	}
	return outErr
}
