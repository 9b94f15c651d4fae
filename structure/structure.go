/*
 * structure.go, part of golocus.
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
	"fmt"
	"strings"

	locus "github.com/rmera/golocus"
	"gonum.org/v1/gonum/mat"
)

// Atom contains the atoms read except for the coordinates, which will be in a matrix
// per model in the Structure.
type Atom struct {
	Name      string
	Serial    int
	ResName   string
	ResSeq    int
	ICode     byte
	Chain     string
	Het       bool //is hetatm in the pdb file?
	Symbol    string
	Occupancy float64
	BFactor   float64
}

// ResidueID is the key of a residue within a chain. It uses the same
// conventions as locus.Key.
type ResidueID struct {
	HetField string
	ResSeq   int
	ICode    byte
}

func (R ResidueID) String() string {
	return fmt.Sprintf("('%s', %d, '%c')", R.HetField, R.ResSeq, R.ICode)
}

// Residue is a group of atoms sharing chain, residue name, number and insertion code.
type Residue struct {
	ID    ResidueID
	Name  string
	Chain string
	Atoms []int //indexes in Structure.Atoms
}

// Chain holds the residues of a chain, in the order they appear in the file.
type Chain struct {
	ID       string
	residues []*Residue
	index    map[ResidueID]*Residue
}

func newChain(id string) *Chain {
	return &Chain{ID: id, index: make(map[ResidueID]*Residue)}
}

// Residues returns the residues of the chain.
func (C *Chain) Residues() []*Residue {
	return C.residues
}

// Residue returns the residue with the given id, or nil.
func (C *Chain) Residue(id ResidueID) *Residue {
	return C.index[id]
}

func (C *Chain) add(id ResidueID, name string) *Residue {
	r, ok := C.index[id]
	if !ok {
		r = &Residue{ID: id, Name: name, Chain: C.ID}
		C.index[id] = r
		C.residues = append(C.residues, r)
	}
	return r
}

// Structure is a macromolecular structure read from a file. Atoms (and so chains and
// residues) are taken from the first model. Coords has one N x 3 matrix per model.
type Structure struct {
	ID     string //usually the PDB code
	File   string //base name of the file read, if any
	Atoms  []*Atom
	Coords []*mat.Dense
	chains []*Chain
	index  map[string]*Chain
}

func newStructure(id string) *Structure {
	return &Structure{ID: id, index: make(map[string]*Chain)}
}

// Chains returns the chains in file order.
func (S *Structure) Chains() []*Chain {
	return S.chains
}

// Chain returns the chain with the given label, or nil.
func (S *Structure) Chain(id string) *Chain {
	return S.index[id]
}

// Len returns the number of atoms.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

// Models returns the number of models (frames) read.
func (S *Structure) Models() int {
	return len(S.Coords)
}

// addAtom appends at to the structure and to the residue it belongs to.
func (S *Structure) addAtom(at *Atom) {
	S.Atoms = append(S.Atoms, at)
	c, ok := S.index[at.Chain]
	if !ok {
		c = newChain(at.Chain)
		S.index[at.Chain] = c
		S.chains = append(S.chains, c)
	}
	id := ResidueID{HetField: residueHetField(at), ResSeq: at.ResSeq, ICode: at.ICode}
	r := c.add(id, at.ResName)
	r.Atoms = append(r.Atoms, len(S.Atoms)-1)
}

// residueHetField gives waters "W", other HETATM groups "H_"+name
// and standard residues a blank.
func residueHetField(at *Atom) string {
	if !at.Het {
		return locus.HetStandard
	}
	return locus.HetField(at.ResName, true)
}

// Lookup finds what k names. For a chain key, the residue returned is nil.
// Errors wrap ErrNotFound.
func (S *Structure) Lookup(k locus.Key) (*Chain, *Residue, error) {
	c := S.Chain(k.Chain)
	if c == nil {
		return nil, nil, &Error{fmt.Sprintf("chain %s not in %s", k.Chain, S.ID), S.File, []string{"Lookup"}, false, ErrNotFound}
	}
	if !k.Residue {
		return c, nil, nil
	}
	r := c.Residue(ResidueID{HetField: k.HetField, ResSeq: k.ResSeq, ICode: k.ICode})
	if r == nil {
		return c, nil, &Error{fmt.Sprintf("residue %s not in chain %s of %s", k, k.Chain, S.ID), S.File, []string{"Lookup"}, false, ErrNotFound}
	}
	return c, r, nil
}

// Matches returns true if id names this structure, either by its ID
// (ignoring case, as PDB codes are case insensitive) or by its file name.
func (S *Structure) Matches(id string) bool {
	return strings.EqualFold(id, S.ID) || (S.File != "" && id == S.File)
}

// Resolve finds the residue named by e. It returns a nil residue and no error
// if e names a whole chain that is present.
func (S *Structure) Resolve(e *locus.Entry) (*Chain, *Residue, error) {
	if !S.Matches(e.PDBID()) {
		return nil, nil, &Error{fmt.Sprintf("entry %s does not belong to structure %s", e, S.ID), S.File, []string{"Resolve"}, true, nil}
	}
	c, r, err := S.Lookup(e.Key())
	return c, r, errDecorate(err, "Resolve")
}

// ResidueCoords returns a len(r.Atoms) x 3 matrix with the coordinates of r in the given model.
// It panics if model is out of range, as that is a programming error.
func (S *Structure) ResidueCoords(r *Residue, model int) *mat.Dense {
	if model >= len(S.Coords) || model < 0 {
		panic(fmt.Sprintf("Model requested (%d) out of range", model))
	}
	ret := mat.NewDense(len(r.Atoms), 3, nil)
	for i, at := range r.Atoms {
		ret.SetRow(i, S.Coords[model].RawRowView(at))
	}
	return ret
}

// Centroid returns the geometric center of r in the given model, as a 1 x 3 matrix.
func (S *Structure) Centroid(r *Residue, model int) *mat.Dense {
	coords := S.ResidueCoords(r, model)
	n, _ := coords.Dims()
	ones := mat.NewDense(1, n, nil)
	for i := 0; i < n; i++ {
		ones.Set(0, i, 1)
	}
	cent := mat.NewDense(1, 3, nil)
	cent.Mul(ones, coords)
	cent.Scale(1/float64(n), cent)
	return cent
}
