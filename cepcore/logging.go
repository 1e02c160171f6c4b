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

package cepcore

import (
	"io"
	"log"
)

// logger is a package-scoped diagnostic logger, silent by default.
// SetVerbose points it at an io.Writer (e.g. os.Stderr) so the
// facade can report plan selection and worker lifecycle events —
// the same "fmt"/"log"-at-call-sites style the rest of the retrieved
// corpus uses rather than a structured-logging library, gated by a
// verbosity flag the way cmd/sdb/main.go gates its own diagnostics.
var logger = log.New(io.Discard, "cep: ", log.LstdFlags)

// SetVerbose redirects the package logger to w, or silences it again
// if w is nil.
func SetVerbose(w io.Writer) {
	if w == nil {
		logger.SetOutput(io.Discard)
		return
	}
	logger.SetOutput(w)
}
