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
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sneller-cep/cep/cepevent"
)

func TestEventReaderDecodesTypeTimeAndNumerics(t *testing.T) {
	const csvData = "AAPL,202101010930,10.5,15\nAMZN,202101011000,8,520.25\n"
	r, err := NewEventReader(strings.NewReader(csvData), []string{"type", "time", "open", "peak"}, "type", "time")
	if err != nil {
		t.Fatal(err)
	}

	var got []cepevent.Event
	for {
		e, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, e)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Type != "AAPL" {
		t.Fatalf("expected type AAPL, got %s", got[0].Type)
	}
	if v, ok := got[0].Payload["open"].(float64); !ok || v != 10.5 {
		t.Fatalf("expected open=10.5 float64, got %#v", got[0].Payload["open"])
	}
	if v, ok := got[0].Payload["peak"].(int64); !ok || v != 15 {
		t.Fatalf("expected peak=15 int64, got %#v", got[0].Payload["peak"])
	}
	if got[1].Timestamp.Before(got[0].Timestamp) {
		t.Fatal("expected second event's timestamp to not precede the first's")
	}
}

func TestEventReaderRejectsUnknownKeys(t *testing.T) {
	if _, err := NewEventReader(strings.NewReader(""), []string{"a"}, "missing", "a"); err == nil {
		t.Fatal("expected an error for an unknown event_type_key")
	}
}

func TestReadAllClosesStream(t *testing.T) {
	r, err := NewEventReader(strings.NewReader("AAPL,202101010930,10\n"), []string{"type", "time", "open"}, "type", "time")
	if err != nil {
		t.Fatal(err)
	}
	stream := cepevent.NewStream()
	if err := ReadAll(r, stream); err != nil {
		t.Fatal(err)
	}
	if _, ok := stream.Pop(); !ok {
		t.Fatal("expected one buffered event before the close is observed")
	}
	if _, ok := stream.Pop(); ok {
		t.Fatal("expected the stream to report closed after draining")
	}
}

func TestMatchWriterBlankLineSeparated(t *testing.T) {
	var buf bytes.Buffer
	mw := NewMatchWriter(&buf)
	m1 := []cepevent.Event{{Type: "AAPL", Payload: map[string]any{"open": 10}}}
	m2 := []cepevent.Event{{Type: "AMZN", Payload: map[string]any{"open": 8}}}
	if err := mw.Write(m1); err != nil {
		t.Fatal(err)
	}
	if err := mw.Write(m2); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "\n\n") != 2 {
		t.Fatalf("expected two blank-line separators, got output:\n%s", out)
	}
}
