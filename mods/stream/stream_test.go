package stream_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lithic-lang/lithic/mods/stream"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	out, err := stream.NewOutputStream(path)
	require.NoError(t, err)
	_, err = out.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, out.Close())

	in, err := stream.NewInputStream(path)
	require.NoError(t, err)
	buf := make([]byte, 16)
	n, err := in.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))
	require.NoError(t, in.Close())
}

func TestOutputTruncatesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0644))

	out, err := stream.NewOutputStream(path)
	require.NoError(t, err)
	_, err = out.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, out.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(content))
}

func TestInputMissingFile(t *testing.T) {
	_, err := stream.NewInputStream(filepath.Join(t.TempDir(), "no-such-file"))
	require.Error(t, err)
}

func TestExecInputUnsupported(t *testing.T) {
	_, err := stream.NewInputStream("exec cat")
	require.Error(t, err)
}

func TestWriterOutputStream(t *testing.T) {
	sb := &strings.Builder{}
	out := &stream.WriterOutputStream{Writer: sb}
	_, err := out.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, out.Flush())
	require.NoError(t, out.Close())
	require.Equal(t, "abc", sb.String())
}

func TestReaderInputStream(t *testing.T) {
	in := &stream.ReaderInputStream{Reader: strings.NewReader("abc")}
	buf := make([]byte, 8)
	n, err := in.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "abc", string(buf[:n]))
	require.NoError(t, in.Close())
}
