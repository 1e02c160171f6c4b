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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sneller-cep/cep/cepevent"
	"github.com/sneller-cep/cep/config"
	"github.com/sneller-cep/cep/evaltree"
	"github.com/sneller-cep/cep/iocsv"
)

// matchWriter is the common surface iocsv.MatchWriter and
// iocsv.CompressedMatchWriter share.
type matchWriter interface {
	Write(m evaltree.Match) error
}

// loadStream drains reader into a fully materialized, closed
// cepevent.Stream (the CLI harness is file-backed, so there is no
// "live" stream to run against) and, when opts requests derived
// statistics, a second independent Duplicate of it for
// cepcore.Facade.Submit's sample parameter.
func loadStream(reader *iocsv.EventReader, opts config.Options) (stream, sample *cepevent.Stream, err error) {
	stream = cepevent.NewStream()
	if err := iocsv.ReadAll(reader, stream); err != nil {
		return nil, nil, fmt.Errorf("reading events: %w", err)
	}
	if opts.Statistics != config.NoStatistics {
		sample = stream.Duplicate()
	}
	return stream, sample, nil
}

// openMatchWriter opens path (or stdout, for "-") and wraps it with a
// plain or zstd-compressed iocsv.MatchWriter per compress.
func openMatchWriter(path string, compress bool) (writer matchWriter, closeFn func(), err error) {
	var w io.Writer = os.Stdout
	var f *os.File
	if path != "-" {
		f, err = os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating output file: %w", err)
		}
		w = f
	}

	closeAll := func() {
		if f != nil {
			f.Close()
		}
	}

	if compress {
		cw, err := iocsv.NewCompressedMatchWriter(w)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("opening zstd writer: %w", err)
		}
		return cw, func() { cw.Close(); closeAll() }, nil
	}
	return iocsv.NewMatchWriter(w), closeAll, nil
}
