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

package predicate

import "fmt"

// Payload is an event's field map, e.g. {"open": 10.5, "peak": 73}.
type Payload map[string]any

// Binding maps a pattern's declared names to the payload bound to that
// name, e.g. {"a": evtA.Payload, "b": evtB.Payload}.
type Binding map[string]Payload

// Term is a scalar-valued expression over a Binding. It is a closed
// tagged union: Atomic, Field, Plus, Minus, Times, Divide.
type Term interface {
	term()
	// Eval resolves the term against b. ok is false if a referenced
	// name or field is absent from b.
	Eval(b Binding) (v float64, ok bool)
	collectNames(set map[string]struct{})
}

// Atomic is a constant scalar.
type Atomic struct {
	Value float64
}

func (Atomic) term() {}

func (a Atomic) Eval(Binding) (float64, bool) { return a.Value, true }

func (Atomic) collectNames(map[string]struct{}) {}

// Field references a named binding's payload field, e.g. a.open.
type Field struct {
	Name  string
	Field string
}

func (Field) term() {}

func (f Field) Eval(b Binding) (float64, bool) {
	payload, ok := b[f.Name]
	if !ok {
		return 0, false
	}
	v, ok := payload[f.Field]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func (f Field) collectNames(set map[string]struct{}) {
	set[f.Name] = struct{}{}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

type binaryArith struct {
	Left, Right Term
}

func (b binaryArith) collectNames(set map[string]struct{}) {
	b.Left.collectNames(set)
	b.Right.collectNames(set)
}

// Plus is Left + Right.
type Plus struct{ binaryArith }

func (Plus) term() {}

func (p Plus) Eval(b Binding) (float64, bool) {
	l, ok := p.Left.Eval(b)
	if !ok {
		return 0, false
	}
	r, ok := p.Right.Eval(b)
	if !ok {
		return 0, false
	}
	return l + r, true
}

// Minus is Left - Right.
type Minus struct{ binaryArith }

func (Minus) term() {}

func (m Minus) Eval(b Binding) (float64, bool) {
	l, ok := m.Left.Eval(b)
	if !ok {
		return 0, false
	}
	r, ok := m.Right.Eval(b)
	if !ok {
		return 0, false
	}
	return l - r, true
}

// Times is Left * Right.
type Times struct{ binaryArith }

func (Times) term() {}

func (t Times) Eval(b Binding) (float64, bool) {
	l, ok := t.Left.Eval(b)
	if !ok {
		return 0, false
	}
	r, ok := t.Right.Eval(b)
	if !ok {
		return 0, false
	}
	return l * r, true
}

// Divide is Left / Right.
type Divide struct{ binaryArith }

func (Divide) term() {}

func (d Divide) Eval(b Binding) (float64, bool) {
	l, ok := d.Left.Eval(b)
	if !ok {
		return 0, false
	}
	r, ok := d.Right.Eval(b)
	if !ok || r == 0 {
		return 0, false
	}
	return l / r, true
}

func (f Field) String() string { return fmt.Sprintf("%s.%s", f.Name, f.Field) }
