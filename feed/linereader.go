// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"bufio"
	"io"
)

// lineReader only returns entire newline-delimited lines, so that a CSV file which is
// being written to is never parsed with a partial line.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) > 0 {
		n := copy(b, l.pending)
		l.pending = l.pending[n:]
		return n, nil
	}
	data, err := l.r.ReadBytes('\n')
	if err != nil {
		l.partial = append(l.partial, data...)
		return 0, err
	}
	line := data
	if len(l.partial) > 0 {
		line = append(l.partial, data...)
		l.partial = nil
	}
	n := copy(b, line)
	l.pending = line[n:]
	return n, nil
}
