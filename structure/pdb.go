/*
 * pdb.go, part of golocus.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Reads the atom part (everything but coordinates and b-factor) of an ATOM or HETATM line.
func readAtom(line string) (*Atom, error) {
	var err error
	at := new(Atom)
	at.Het = strings.HasPrefix(line, "HETATM")
	at.Serial, err = strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return nil, err
	}
	at.Name = strings.TrimSpace(line[12:16])
	//PDB says that pos. 17 is for other thing but I see that is
	//used for residue name in many cases
	at.ResName = strings.TrimSpace(line[17:20])
	at.Chain = string(line[21])
	at.ResSeq, err = strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return nil, err
	}
	at.ICode = line[26]
	//the optional columns. If something is missing we just omit it.
	if len(line) >= 60 {
		at.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	}
	if len(line) >= 66 {
		at.BFactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	if len(line) >= 78 {
		at.Symbol = strings.TrimSpace(line[76:78])
	}
	return at, nil
}

// Reads the coordinates of an ATOM or HETATM line.
func readCoords(line string, c []float64) error {
	var err [3]error
	c[0], err[0] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	c[1], err[1] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	c[2], err[2] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	for _, e := range err {
		if e != nil {
			return e
		}
	}
	return nil
}

// ReadPDB reads the ATOM and HETATM records of a PDB file. Atoms, chains and residues
// come from the first model, coordinates are read for every model. All models must
// have the same number of atoms.
func ReadPDB(pdb io.Reader, id string) (*Structure, error) {
	S := newStructure(id)
	coords := make([][]float64, 1)
	firstModel := true //are we reading the first model? if not we only save coordinates
	buf := bufio.NewReader(pdb)
	contlines := 0 //count the lines read to better report errors
	c := make([]float64, 3)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, &Error{fmt.Sprintf("%s: %s", ReadError, err.Error()), "", []string{"ReadPDB"}, true, err}
		}
		contlines++
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			if len(line) < 54 {
				return nil, &Error{fmt.Sprintf("%s %d: too short", WrongFormat, contlines), "", []string{"ReadPDB"}, true, nil}
			}
			if firstModel {
				at, err := readAtom(line)
				if err != nil {
					return nil, &Error{fmt.Sprintf("%s %d: %s", WrongFormat, contlines, err.Error()), "", []string{"readAtom", "ReadPDB"}, true, err}
				}
				S.addAtom(at)
			}
			if err := readCoords(line, c); err != nil {
				return nil, &Error{fmt.Sprintf("%s %d: %s", WrongFormat, contlines, err.Error()), "", []string{"readCoords", "ReadPDB"}, true, err}
			}
			//coords are appended for all the models
			coords[len(coords)-1] = append(coords[len(coords)-1], c...)
		case strings.HasPrefix(line, "ENDMDL"):
			firstModel = false
		case strings.HasPrefix(line, "MODEL"):
			//a MODEL after some coordinates starts a new frame.
			if len(coords[len(coords)-1]) > 0 {
				coords = append(coords, make([]float64, 0, 3*len(S.Atoms)))
			}
		}
		if err == io.EOF {
			break
		}
	}
	if len(S.Atoms) == 0 {
		return nil, &Error{NoAtoms, "", []string{"ReadPDB"}, true, nil}
	}
	if len(coords[len(coords)-1]) == 0 {
		coords = coords[:len(coords)-1]
	}
	for i, v := range coords {
		if len(v) != 3*len(S.Atoms) {
			return nil, &Error{fmt.Sprintf("Model %d has %d atoms, the first one has %d", i+1, len(v)/3, len(S.Atoms)), "", []string{"ReadPDB"}, true, nil}
		}
		S.Coords = append(S.Coords, mat.NewDense(len(S.Atoms), 3, v))
	}
	return S, nil
}

// ReadPDBFile reads a PDB file, which can be gzip or zstd compressed. The
// structure ID is the file name without extensions.
func ReadPDBFile(name string) (*Structure, error) {
	f, err := Open(name)
	if err != nil {
		return nil, errDecorate(err, "ReadPDBFile")
	}
	defer f.Close()
	base := filepath.Base(name)
	S, err := ReadPDB(f, IDFromFileName(base))
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.filename = name
		}
		return nil, errDecorate(err, "ReadPDBFile")
	}
	S.File = base
	return S, nil
}

// IDFromFileName strips the compression and structure extensions from
// name: 3ql8.pdb.gz gives 3ql8.
func IDFromFileName(name string) string {
	name = filepath.Base(name)
	for _, ext := range []string{".gz", ".zst", ".pdb", ".ent"} {
		name = strings.TrimSuffix(name, ext)
	}
	//pdb3ql8.ent, as in the PDB archive
	if len(name) == 7 && strings.HasPrefix(name, "pdb") {
		name = name[3:]
	}
	return name
}

// FindPDBFile looks in dir for the file for the structure id, trying the usual names
// and compression extensions. The name is also tried as given, so ids that are file
// names work.
func FindPDBFile(dir, id string) (string, error) {
	cands := []string{id}
	for _, base := range []string{id, strings.ToLower(id), "pdb" + strings.ToLower(id)} {
		for _, ext := range []string{".pdb", ".ent"} {
			for _, z := range []string{"", ".gz", ".zst"} {
				cands = append(cands, base+ext+z)
			}
		}
	}
	for _, c := range cands {
		p := filepath.Join(dir, c)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", &Error{fmt.Sprintf("no structure file for %s", id), dir, []string{"FindPDBFile"}, true, ErrNotFound}
}

// WritePDB writes the atoms of residues, with the coordinates of the given model,
// as PDB ATOM/HETATM records. A TER record is written when the chain changes.
func WritePDB(out io.Writer, S *Structure, residues []*Residue, model int) error {
	if model >= len(S.Coords) || model < 0 {
		return &Error{fmt.Sprintf("Model %d out of range", model), S.File, []string{"WritePDB"}, true, nil}
	}
	if _, err := fmt.Fprint(out, "REMARK     WRITTEN WITH GOLOCUS\n"); err != nil {
		return err
	}
	prevchain := ""
	for _, r := range residues {
		if prevchain != "" && r.Chain != prevchain {
			if _, err := fmt.Fprintln(out, "TER"); err != nil {
				return &Error{fmt.Sprintf("Cant print TER record: %s", err.Error()), S.File, []string{"WritePDB"}, true, err}
			}
		}
		prevchain = r.Chain
		for _, i := range r.Atoms {
			at := S.Atoms[i]
			c := S.Coords[model].RawRowView(i)
			first := "ATOM"
			if at.Het {
				first = "HETATM"
			}
			//4 chars for the atom name are used when hydrogens are included.
			name := " " + at.Name
			if len(at.Name) >= 4 {
				name = at.Name
			}
			_, err := fmt.Fprintf(out, "%-6s%5d %-4s %3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
				first, at.Serial, name, at.ResName, at.Chain, at.ResSeq, at.ICode, c[0], c[1], c[2], at.Occupancy, at.BFactor, at.Symbol)
			if err != nil {
				return &Error{fmt.Sprintf("Cant print PDB line: %s", err.Error()), S.File, []string{"WritePDB"}, true, err}
			}
		}
	}
	_, err := fmt.Fprint(out, "END\n")
	return err
}
