package spec

// OutputStream is the sink a launched program writes to.
type OutputStream interface {
	Write([]byte) (int, error)
	Flush() error
	Close() error
}

// InputStream is the source a launched program reads from.
type InputStream interface {
	Read(p []byte) (n int, err error)
	Close() error
}
