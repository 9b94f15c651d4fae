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

package structure

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by the errors returned when a chain or residue
// is not in the structure.
var ErrNotFound = errors.New("not found")

// Error is the error type for this package. It satisfies locus.Decorator.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	err      error
}

func (err *Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("structure: %s", err.message)
	}
	return fmt.Sprintf("structure %s: %s", err.filename, err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// FileName returns the file the error refers to, if any.
func (err *Error) FileName() string { return err.filename }

// Critical is false for lookups that found nothing, and true for
// problems reading a structure.
func (err *Error) Critical() bool { return err.critical }

func (err *Error) Unwrap() error { return err.err }

// errDecorate adds caller to the decoration of err if err is an *Error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

const (
	UnableToOpen = "Unable to open file"
	ReadError    = "Error reading structure"
	WrongFormat  = "Wrong format in PDB line"
	NoAtoms      = "No ATOM or HETATM records"
)
