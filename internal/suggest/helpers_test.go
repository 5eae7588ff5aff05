package suggest

import (
	"io"
	"time"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

type pipeWriter struct {
	w *io.PipeWriter
}

func newPipe() (io.Reader, *pipeWriter) {
	r, w := io.Pipe()
	return r, &pipeWriter{w: w}
}

func (p *pipeWriter) line(s string) {
	_, _ = io.WriteString(p.w, s+"\n")
}
