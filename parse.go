/*
 * parse.go, part of golocus.
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

import (
	"strings"
)

// Parse reads an entry from its text form, using sep as separator (DefaultSep if
// sep is empty). Two forms are accepted:
//
//	PDB:CHAIN              3QL8:A
//	PDB:CHAIN:NAME:NUM     3QL8:A:X02:100, 3QL8:A:X01:100A (insertion code A)
//
// Any other number of segments is an IllegalArgument error. In particular, 3QL8:A:NAG
// is rejected, as it can't be told whether the residue number or the name is missing.
// Structure labels that contain the separator need a different separator.
func Parse(token, sep string) (*Entry, error) {
	if sep == "" {
		sep = DefaultSep
	}
	if err := validateSep(sep); err != nil {
		return nil, errDecorate(err, "Parse")
	}
	segs := strings.Split(token, sep)
	f := Fields{Sep: sep}
	switch len(segs) {
	case 2:
		f.PDBID, f.Chain = segs[0], segs[1]
	case 4:
		f.PDBID, f.Chain, f.ResName = segs[0], segs[1], segs[2]
		f.ResNum, f.ICode = splitNumICode(segs[3])
	default:
		return nil, newError(IllegalArgument, "Parse", "%q has %d segments separated by %q, expected 2 (PDB, chain) or 4 (PDB, chain, name, number)", token, len(segs), sep)
	}
	//Every segment is there, so emptiness is a grammar problem, not a missing argument.
	if err := ValidatePDBID(f.PDBID); err != nil {
		return nil, errDecorate(err, "Parse")
	}
	if err := ValidateChain(f.Chain); err != nil {
		return nil, errDecorate(err, "Parse")
	}
	if len(segs) == 4 {
		if err := ValidateResName(f.ResName); err != nil {
			return nil, errDecorate(err, "Parse")
		}
		if _, err := ValidateResNum(f.ResNum); err != nil {
			return nil, errDecorate(err, "Parse")
		}
	}
	e, err := FromFields(f)
	return e, errDecorate(err, "Parse")
}

// MustParse is like Parse but panics on error. Meant for literals in programs and tests.
func MustParse(token, sep string) *Entry {
	e, err := Parse(token, sep)
	if err != nil {
		panic(err.Error())
	}
	return e
}

// splitNumICode splits "100A" into "100" and "A". If the last character
// is not a letter, everything is taken as the number.
func splitNumICode(s string) (num, icode string) {
	if len(s) > 0 && isAlpha(s[len(s)-1]) {
		return s[:len(s)-1], s[len(s)-1:]
	}
	return s, ""
}

// String returns the entry in the form read by Parse, using the current separator.
func (E *Entry) String() string {
	var b strings.Builder
	b.WriteString(E.pdbID)
	b.WriteString(E.sep)
	b.WriteString(E.chain)
	if E.res != nil {
		b.WriteString(E.sep)
		b.WriteString(E.res.Name)
		b.WriteString(E.sep)
		b.WriteString(E.numText())
		if E.res.ICode != NoICode {
			b.WriteByte(E.res.ICode)
		}
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (E *Entry) MarshalText() ([]byte, error) {
	return []byte(E.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with DefaultSep. It only works
// on a zero Entry, an already built one can't be overwritten.
func (E *Entry) UnmarshalText(text []byte) error {
	if E.pdbID != "" {
		return newError(ImmutableField, "UnmarshalText", "entry %s is already set", E.String())
	}
	e, err := Parse(string(text), DefaultSep)
	if err != nil {
		return errDecorate(err, "UnmarshalText")
	}
	*E = *e
	return nil
}
