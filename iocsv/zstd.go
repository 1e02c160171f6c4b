// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package iocsv

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// CompressedMatchWriter wraps a MatchWriter in a zstd stream, for
// callers who want the rendered match file compressed on disk —
// grounded on the teacher's use of klauspost/compress/zstd for its
// own on-disk block compression (compr/compression.go, ion/compress.go).
type CompressedMatchWriter struct {
	*MatchWriter
	enc *zstd.Encoder
}

// NewCompressedMatchWriter wraps w with a single-threaded zstd
// encoder, matching the teacher's zstd.WithEncoderConcurrency(1)
// choice for deterministic single-worker output.
func NewCompressedMatchWriter(w io.Writer) (*CompressedMatchWriter, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return &CompressedMatchWriter{MatchWriter: NewMatchWriter(enc), enc: enc}, nil
}

// Close flushes and closes the zstd encoder.
func (cw *CompressedMatchWriter) Close() error {
	return cw.enc.Close()
}
