/*
 * entry.go, part of golocus.
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
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultSep is the separator used when none is given.
const DefaultSep = ":"

// Names accepted by Entry.Set.
const (
	FieldPDBID   = "pdb_id"
	FieldChain   = "chain_id"
	FieldResName = "res_name"
	FieldResNum  = "res_num"
	FieldICode   = "icode"
	FieldHet     = "is_het"
	FieldSep     = "sep"
)

// Residue identifies a residue inside a chain. Name, number and insertion code
// always go together, an Entry either has all of them or none.
type Residue struct {
	Name  string
	Num   int
	ICode byte //NoICode if there is no insertion code
}

// Entry names a chain, or a residue (usually a ligand, ion or water) in a chain,
// of a given structure. Only the hetero flag and the separator can be changed
// once an Entry has been built.
type Entry struct {
	pdbID string
	chain string
	res   *Residue
	het   bool
	sep   string
}

// Fields collects the values for FromFields. Empty strings mean "absent".
type Fields struct {
	PDBID   string
	Chain   string
	ResName string
	ResNum  string
	ICode   string
	Het     *bool  //nil means true
	Sep     string //empty means DefaultSep
}

// New returns an Entry for the chain chain of the structure pdbID.
func New(pdbID, chain string) (*Entry, error) {
	e, err := FromFields(Fields{PDBID: pdbID, Chain: chain})
	return e, errDecorate(err, "New")
}

// NewResidueEntry returns an Entry for the residue name/num/icode in the chain
// chain of the structure pdbID. An icode of 0 or ' ' means no insertion code.
// The entry is marked as hetero.
func NewResidueEntry(pdbID, chain, name string, num int, icode byte) (*Entry, error) {
	e, err := newEntry(pdbID, chain, DefaultSep)
	if err != nil {
		return nil, errDecorate(err, "NewResidueEntry")
	}
	if err := ValidateResName(name); err != nil {
		return nil, errDecorate(err, "NewResidueEntry")
	}
	if err := ValidateResNumInt(num); err != nil {
		return nil, errDecorate(err, "NewResidueEntry")
	}
	if icode == 0 {
		icode = NoICode
	}
	ic, err := ValidateICode(string(icode))
	if err != nil {
		return nil, errDecorate(err, "NewResidueEntry")
	}
	e.res = &Residue{Name: name, Num: num, ICode: ic}
	if err := e.checkSep(e.sep); err != nil {
		return nil, errDecorate(err, "NewResidueEntry")
	}
	return e, nil
}

// FromFields builds an Entry from fields given as text. The residue name and number
// must be both given or both absent, and an insertion code requires a residue number.
// A blank insertion code counts as absent.
func FromFields(f Fields) (*Entry, error) {
	if f.PDBID == "" {
		return nil, newError(IllegalArgument, "FromFields", "missing structure label")
	}
	if f.Chain == "" {
		return nil, newError(IllegalArgument, "FromFields", "missing chain label")
	}
	if (f.ResName == "") != (f.ResNum == "") {
		return nil, newError(IllegalArgument, "FromFields", "residue name (%q) and number (%q) must be given together", f.ResName, f.ResNum)
	}
	if f.ICode != "" && f.ICode != string(NoICode) && f.ResNum == "" {
		return nil, newError(IllegalArgument, "FromFields", "insertion code %q given without a residue number", f.ICode)
	}
	sep := f.Sep
	if sep == "" {
		sep = DefaultSep
	}
	e, err := newEntry(f.PDBID, f.Chain, sep)
	if err != nil {
		return nil, errDecorate(err, "FromFields")
	}
	if f.Het != nil {
		e.het = *f.Het
	}
	if f.ResName != "" {
		if err := ValidateResName(f.ResName); err != nil {
			return nil, errDecorate(err, "FromFields")
		}
		num, err := ValidateResNum(f.ResNum)
		if err != nil {
			return nil, errDecorate(err, "FromFields")
		}
		icode, err := ValidateICode(f.ICode)
		if err != nil {
			return nil, errDecorate(err, "FromFields")
		}
		e.res = &Residue{Name: f.ResName, Num: num, ICode: icode}
	}
	if err := e.checkSep(sep); err != nil {
		return nil, errDecorate(err, "FromFields")
	}
	return e, nil
}

// newEntry validates the fields every Entry has.
func newEntry(pdbID, chain, sep string) (*Entry, error) {
	if err := validateSep(sep); err != nil {
		return nil, errDecorate(err, "newEntry")
	}
	if err := ValidatePDBID(pdbID); err != nil {
		return nil, errDecorate(err, "newEntry")
	}
	if err := ValidateChain(chain); err != nil {
		return nil, errDecorate(err, "newEntry")
	}
	return &Entry{pdbID: pdbID, chain: chain, het: true, sep: sep}, nil
}

func validateSep(sep string) error {
	r, size := utf8.DecodeRuneInString(sep)
	if size == 0 || size != len(sep) || r == utf8.RuneError || !unicode.IsPrint(r) {
		return newError(Grammar, "validateSep", "separator %q must be a single printable character", sep)
	}
	return nil
}

// checkSep verifies that sep does not show up inside any field, which would
// make the serialized entry impossible to parse back.
func (E *Entry) checkSep(sep string) error {
	fields := []string{E.pdbID, E.chain}
	if E.res != nil {
		fields = append(fields, E.res.Name, E.numText())
		if E.res.ICode != NoICode {
			fields = append(fields, string(E.res.ICode))
		}
	}
	for _, f := range fields {
		if strings.Contains(f, sep) {
			return newError(Grammar, "checkSep", "field %q contains the separator %q", f, sep)
		}
	}
	return nil
}

// PDBID returns the structure label.
func (E *Entry) PDBID() string { return E.pdbID }

// Chain returns the chain label.
func (E *Entry) Chain() string { return E.chain }

// Residue returns the residue fields, and false if the entry names a whole chain.
func (E *Entry) Residue() (Residue, bool) {
	if E.res == nil {
		return Residue{}, false
	}
	return *E.res, true
}

// HasResidue returns true if the entry names a residue rather than a chain.
func (E *Entry) HasResidue() bool { return E.res != nil }

// IsHet returns whether the residue is to be looked for among hetero groups.
func (E *Entry) IsHet() bool { return E.het }

// SetHet sets the hetero flag.
func (E *Entry) SetHet(het bool) { E.het = het }

// Sep returns the separator used to serialize the entry.
func (E *Entry) Sep() string { return E.sep }

// SetSep changes the separator. It fails if sep is not a single printable
// character, or if it occurs in any of the fields.
func (E *Entry) SetSep(sep string) error {
	if err := validateSep(sep); err != nil {
		return errDecorate(err, "SetSep")
	}
	if err := E.checkSep(sep); err != nil {
		return errDecorate(err, "SetSep")
	}
	E.sep = sep
	return nil
}

// Set assigns a field by name, for callers that get field/value pairs from text
// (manifests, command lines). Only FieldHet and FieldSep can be set, the
// identity fields give an ImmutableField error.
func (E *Entry) Set(field, value string) error {
	switch field {
	case FieldHet:
		het, err := strconv.ParseBool(value)
		if err != nil {
			return newError(IllegalArgument, "Set", "value %q for %s is not a boolean", value, field)
		}
		E.SetHet(het)
		return nil
	case FieldSep:
		return errDecorate(E.SetSep(value), "Set")
	case FieldPDBID, FieldChain, FieldResName, FieldResNum, FieldICode:
		return newError(ImmutableField, "Set", "%s can't be changed after the entry is created", field)
	}
	return newError(IllegalArgument, "Set", "unknown field %q", field)
}

// Equal returns true if both entries name the same chain or residue.
// The hetero flag and the separator are not compared.
func (E *Entry) Equal(o *Entry) bool {
	if E == nil || o == nil {
		return E == o
	}
	if E.pdbID != o.pdbID || E.chain != o.chain {
		return false
	}
	if E.res == nil || o.res == nil {
		return E.res == o.res
	}
	return *E.res == *o.res
}

func (E *Entry) numText() string {
	return strconv.Itoa(E.res.Num)
}
