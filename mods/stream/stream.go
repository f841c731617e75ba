// Package stream binds named inputs and outputs to byte streams. A
// name is a file path, "-" for the process stdin/stdout, or an output
// of the form "exec <command line>" piping into a spawned process.
package stream

import (
	"errors"
	"io"
	"strings"

	"github.com/lithic-lang/lithic/mods/stream/internal/fio"
	"github.com/lithic-lang/lithic/mods/stream/internal/pio"
	"github.com/lithic-lang/lithic/mods/stream/spec"
)

func NewOutputStream(output string) (out spec.OutputStream, err error) {
	fields := strings.Fields(output)
	if len(fields) > 0 && fields[0] == "exec" {
		cmdLine := strings.TrimSpace(strings.TrimPrefix(output, "exec"))
		return pio.New(cmdLine)
	}
	return fio.NewOutputStream(output)
}

func NewInputStream(input string) (in spec.InputStream, err error) {
	fields := strings.Fields(input)
	if len(fields) > 0 && fields[0] == "exec" {
		return nil, errors.New("exec input streams are not supported")
	}
	return fio.NewInputStream(input)
}

// WriterOutputStream adapts any io.Writer to an OutputStream.
type WriterOutputStream struct {
	Writer io.Writer
}

func (out *WriterOutputStream) Write(buf []byte) (int, error) {
	return out.Writer.Write(buf)
}

func (out *WriterOutputStream) Flush() error {
	return nil
}

func (out *WriterOutputStream) Close() error {
	if wc, ok := out.Writer.(io.Closer); ok {
		return wc.Close()
	}
	return nil
}

// ReaderInputStream adapts any io.Reader to an InputStream.
type ReaderInputStream struct {
	Reader io.Reader
}

func (in *ReaderInputStream) Read(p []byte) (int, error) {
	return in.Reader.Read(p)
}

func (in *ReaderInputStream) Close() error {
	if rc, ok := in.Reader.(io.Closer); ok {
		return rc.Close()
	}
	return nil
}
