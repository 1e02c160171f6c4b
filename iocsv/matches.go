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
	"fmt"
	"io"
	"sort"

	"github.com/sneller-cep/cep/evaltree"
)

// MatchWriter renders complete matches to the text format spec.md §6
// specifies: one event per line (payload rendered as a list), a
// blank line separating matches.
type MatchWriter struct {
	w io.Writer
}

// NewMatchWriter wraps w.
func NewMatchWriter(w io.Writer) *MatchWriter {
	return &MatchWriter{w: w}
}

// Write renders one match: one line per event, then a trailing blank
// line.
func (mw *MatchWriter) Write(m evaltree.Match) error {
	for _, e := range m {
		keys := make([]string, 0, len(e.Payload))
		for k := range e.Payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if _, err := fmt.Fprintf(mw.w, "%s,%s,[", e.Type, e.Timestamp.UTC().Format(timeLayout)); err != nil {
			return err
		}
		for i, k := range keys {
			if i > 0 {
				if _, err := io.WriteString(mw.w, ","); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(mw.w, "%s=%v", k, e.Payload[k]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(mw.w, "]\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(mw.w, "\n")
	return err
}

// Close closes the underlying writer if it implements io.Closer;
// otherwise it is a no-op.
func (mw *MatchWriter) Close() error {
	if c, ok := mw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
