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

// Command cepcli is the CLI/test-harness collaborator spec.md §6
// treats as external: it loads a YAML pattern, reads a CSV event
// file, runs the engine to completion, and renders matches — grounded
// on original_source/main.py's "build pattern, build CEP, feed file,
// print matches" sequence and on cmd/sdb/main.go's flag layout.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sneller-cep/cep/cepcore"
	"github.com/sneller-cep/cep/iocsv"
)

var (
	dashv        bool
	dashPattern  string
	dashInput    string
	dashOutput   string
	dashKeys     string
	dashTypeKey  string
	dashTimeKey  string
	dashCompress bool
)

func init() {
	flag.StringVar(&dashPattern, "pattern", "", "path to the YAML pattern document (required)")
	flag.StringVar(&dashInput, "input", "", "path to the CSV event file (required)")
	flag.StringVar(&dashOutput, "output", "-", "path to the match output file (- for stdout)")
	flag.StringVar(&dashKeys, "keys", "", "comma-separated CSV column names, in file order (required)")
	flag.StringVar(&dashTypeKey, "type-key", "", "the key naming the event-type column (required)")
	flag.StringVar(&dashTimeKey, "time-key", "", "the key naming the YYYYMMDDHHMM timestamp column (required)")
	flag.BoolVar(&dashCompress, "compress", false, "zstd-compress the match output file")
	flag.BoolVar(&dashv, "v", false, "verbose: log plan selection and worker lifecycle")
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()
	if dashPattern == "" || dashInput == "" || dashKeys == "" || dashTypeKey == "" || dashTimeKey == "" {
		exitf("cepcli: -pattern, -input, -keys, -type-key and -time-key are all required")
	}
	if dashv {
		cepcore.SetVerbose(os.Stderr)
	}

	patternData, err := os.ReadFile(dashPattern)
	if err != nil {
		exitf("cepcli: reading pattern file: %v", err)
	}
	pat, opts, err := loadPattern(patternData)
	if err != nil {
		exitf("cepcli: %v", err)
	}

	in, err := os.Open(dashInput)
	if err != nil {
		exitf("cepcli: opening input file: %v", err)
	}
	defer in.Close()

	keys := strings.Split(dashKeys, ",")
	reader, err := iocsv.NewEventReader(in, keys, dashTypeKey, dashTimeKey)
	if err != nil {
		exitf("cepcli: %v", err)
	}

	stream, sample, err := loadStream(reader, opts)
	if err != nil {
		exitf("cepcli: %v", err)
	}

	facade := cepcore.NewFacade()
	handle, err := facade.Submit(pat, opts, sample)
	if err != nil {
		exitf("cepcli: submitting pattern: %v", err)
	}

	writer, closeWriter, err := openMatchWriter(dashOutput, dashCompress)
	if err != nil {
		exitf("cepcli: %v", err)
	}
	defer closeWriter()

	runErr := make(chan error, 1)
	go func() { runErr <- facade.Run(stream) }()

	count := 0
	for {
		m, ok := handle.Sink.Pop()
		if !ok {
			break
		}
		if err := writer.Write(m); err != nil {
			exitf("cepcli: writing match: %v", err)
		}
		count++
	}
	if err := <-runErr; err != nil {
		exitf("cepcli: %v", err)
	}
	if opts.MeasureElapsed {
		fmt.Fprintf(os.Stderr, "cepcli: pattern %s: %d matches in %s\n", pat.ID, count, handle.Elapsed())
	}
}
