/*
 * errors.go, part of golocus.
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

package locus

import "fmt"

// Kind tells apart the three ways an Entry can be rejected.
type Kind int

const (
	// Grammar means that a field does not match its pattern.
	Grammar Kind = iota + 1
	// IllegalArgument means that the fields given do not make sense together
	// (a residue name without number, a wrong number of segments, etc).
	IllegalArgument
	// ImmutableField means an attempt to change one of the identity fields.
	ImmutableField
)

func (k Kind) String() string {
	switch k {
	case Grammar:
		return "invalid entry"
	case IllegalArgument:
		return "illegal argument"
	case ImmutableField:
		return "immutable field"
	}
	return "unknown"
}

// Decorator is the interface for errors that can carry the chain of
// functions they went through. Both this package and structure implement it.
type Decorator interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

// Error is the error type returned by every function in this package.
type Error struct {
	message string
	kind    Kind
	deco    []string
}

func newError(kind Kind, caller, format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), kind: kind, deco: []string{caller}}
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	return fmt.Sprintf("golocus: %s: %s", err.kind, err.message)
}

// Kind returns the kind of violation that produced the error.
func (err *Error) Kind() Kind { return err.kind }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice. An empty string just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical is always true. A rejected entry can't be used for anything.
func (err *Error) Critical() bool { return true }

// Is makes errors.Is(err, ErrGrammar) and friends work.
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.message == "" && t.kind == err.kind
}

// Sentinels to be used with errors.Is. They only match on the Kind.
var (
	ErrGrammar         = &Error{kind: Grammar}
	ErrIllegalArgument = &Error{kind: IllegalArgument}
	ErrImmutableField  = &Error{kind: ImmutableField}
)

// errDecorate adds the caller's name to err if err is a Decorator,
// and returns it. Other errors and nil pass through untouched.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Decorator); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
