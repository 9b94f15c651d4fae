/*
 * open.go, part of golocus.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package structure

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// readCloser closes the decompressor and then the file under it.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Open opens name for reading. Gzip and zstd files are recognized by their first
// bytes, not their extension, and decompressed on the fly.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &Error{fmt.Sprintf("%s: %s", UnableToOpen, err.Error()), name, []string{"Open"}, true, err}
	}
	r, err := Wrap(f)
	if err != nil {
		f.Close()
		var e *Error
		if errors.As(err, &e) {
			e.filename = name
		}
		return nil, errDecorate(err, "Open")
	}
	return r, nil
}

// Wrap returns a ReadCloser that decompresses rc if it is gzip or zstd
// compressed, or just reads it otherwise. Closing it closes rc.
func Wrap(rc io.ReadCloser) (io.ReadCloser, error) {
	buf := bufio.NewReader(rc)
	head, err := buf.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, &Error{fmt.Sprintf("%s: %s", ReadError, err.Error()), "", []string{"Wrap"}, true, err}
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(buf)
		if err != nil {
			return nil, &Error{fmt.Sprintf("%s: gzip: %s", ReadError, err.Error()), "", []string{"Wrap"}, true, err}
		}
		return &readCloser{gz, []func() error{gz.Close, rc.Close}}, nil
	case bytes.HasPrefix(head, zstdMagic):
		zs, err := zstd.NewReader(buf)
		if err != nil {
			return nil, &Error{fmt.Sprintf("%s: zstd: %s", ReadError, err.Error()), "", []string{"Wrap"}, true, err}
		}
		zclose := func() error { zs.Close(); return nil }
		return &readCloser{zs, []func() error{zclose, rc.Close}}, nil
	}
	return &readCloser{buf, []func() error{rc.Close}}, nil
}
