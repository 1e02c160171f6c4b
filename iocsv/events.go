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

// Package iocsv is the CSV event/match file protocol spec.md §6
// declares an external collaborator: one event per line, a
// caller-supplied key list, a designated type column and time
// column, and a match-rendering format with one event per line and a
// blank line between matches. Grounded on original_source/IOUtils.py,
// adapted into the teacher's io.Reader/io.Writer streaming style
// (ion/reader.go) instead of Python's whole-file slurp.
package iocsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sneller-cep/cep/cepevent"
	"github.com/sneller-cep/cep/predicate"
)

// timeLayout matches the YYYYMMDDHHMM digits at positions 0..11 of
// the time-key field value, per spec.md §6.
const timeLayout = "200601021504"

// EventReader decodes one event per CSV record according to a fixed
// key list, coercing numeric fields (int if integral, else float) and
// parsing the time-key field as YYYYMMDDHHMM.
type EventReader struct {
	r       *csv.Reader
	keys    []string
	typeKey string
	timeKey string
	typeIdx int
	timeIdx int
}

// NewEventReader builds a reader over r: keys names every CSV column
// in order, typeKey selects which key's value becomes Event.Type, and
// timeKey selects which key's value is parsed as the event's
// timestamp.
func NewEventReader(r io.Reader, keys []string, typeKey, timeKey string) (*EventReader, error) {
	typeIdx, timeIdx := -1, -1
	for i, k := range keys {
		if k == typeKey {
			typeIdx = i
		}
		if k == timeKey {
			timeIdx = i
		}
	}
	if typeIdx < 0 {
		return nil, fmt.Errorf("iocsv: event_type_key %q not present in keys", typeKey)
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("iocsv: event_time_key %q not present in keys", timeKey)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(keys)
	return &EventReader{r: cr, keys: keys, typeKey: typeKey, timeKey: timeKey, typeIdx: typeIdx, timeIdx: timeIdx}, nil
}

// Read decodes the next record into an Event. It returns io.EOF once
// every record has been consumed, matching csv.Reader.Read's
// convention.
func (er *EventReader) Read() (cepevent.Event, error) {
	record, err := er.r.Read()
	if err != nil {
		return cepevent.Event{}, err
	}
	raw := record[er.timeIdx]
	if len(raw) < len(timeLayout) {
		return cepevent.Event{}, fmt.Errorf("iocsv: %s value %q is shorter than %s", er.timeKey, raw, timeLayout)
	}
	ts, err := time.Parse(timeLayout, raw[:len(timeLayout)])
	if err != nil {
		return cepevent.Event{}, fmt.Errorf("iocsv: parsing %q as %s: %w", raw, er.timeKey, err)
	}
	payload := make(predicate.Payload, len(er.keys))
	for i, k := range er.keys {
		payload[k] = coerce(record[i])
	}
	return cepevent.Event{
		Type:      record[er.typeIdx],
		Timestamp: ts,
		Payload:   payload,
	}, nil
}

// ReadAll drains r into a Stream and closes it once exhausted; a
// caller wanting a live, partially-consumed stream should call Read
// directly instead. This is the shape the CSV-backed CLI harness and
// offline statistics passes both want: a fully materialized, already
// closed Stream ready for Duplicate.
func ReadAll(er *EventReader, stream *cepevent.Stream) error {
	defer stream.Close()
	for {
		e, err := er.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		stream.Push(e)
	}
}

// coerce renders a CSV field as int64 if it parses as one, else as
// float64, else as the raw string — spec.md §6's "numeric fields are
// coerced (int if integral, else float)".
func coerce(field string) any {
	if i, err := strconv.ParseInt(field, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil {
		return f
	}
	return field
}
