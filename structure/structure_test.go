/*
 * structure_test.go, part of golocus.
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
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	locus "github.com/rmera/golocus"
)

type fixAtom struct {
	het       bool
	name, res string
	chain     string
	num       int
	icode     byte
	x, y, z   float64
	symbol    string
}

func pdbLine(serial int, a fixAtom) string {
	rec := "ATOM"
	if a.het {
		rec = "HETATM"
	}
	return fmt.Sprintf("%-6s%5d  %-3s %3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
		rec, serial, a.name, a.res, a.chain, a.num, a.icode, a.x, a.y, a.z, 1.0, 10.0, a.symbol)
}

var fixture = []fixAtom{
	{false, "N", "ALA", "A", 1, ' ', 0, 0, 0, "N"},
	{false, "CA", "ALA", "A", 1, ' ', 1.5, 0, 0, "C"},
	{true, "C1", "X02", "A", 104, ' ', 2, 2, 2, "C"},
	{true, "C2", "X02", "A", 104, ' ', 4, 2, 2, "C"},
	{true, "C1", "X01", "A", 100, 'A', 5, 5, 5, "C"},
	{true, "O", "HOH", "A", 201, ' ', 9, 9, 9, "O"},
	{true, "NA", "NA", "B", 5, ' ', -1, -2, -3, "NA"},
}

func fixturePDB(models int) string {
	var b strings.Builder
	b.WriteString("HEADER    TEST\n")
	for m := 0; m < models; m++ {
		if models > 1 {
			fmt.Fprintf(&b, "MODEL     %4d\n", m+1)
		}
		for i, a := range fixture {
			a.x += float64(m)
			b.WriteString(pdbLine(i+1, a))
		}
		if models > 1 {
			b.WriteString("ENDMDL\n")
		}
	}
	b.WriteString("END\n")
	return b.String()
}

func readFixture(Te *testing.T) *Structure {
	Te.Helper()
	S, err := ReadPDB(strings.NewReader(fixturePDB(1)), "3QL8")
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

func TestReadPDB(Te *testing.T) {
	S := readFixture(Te)
	if S.Len() != len(fixture) || S.Models() != 1 {
		Te.Fatalf("read %d atoms and %d models", S.Len(), S.Models())
	}
	var chains []string
	for _, c := range S.Chains() {
		chains = append(chains, c.ID)
	}
	if diff := cmp.Diff([]string{"A", "B"}, chains); diff != "" {
		Te.Errorf("chains (-want +got):\n%s", diff)
	}
	var ids []ResidueID
	for _, r := range S.Chain("A").Residues() {
		ids = append(ids, r.ID)
	}
	want := []ResidueID{{" ", 1, ' '}, {"H_X02", 104, ' '}, {"H_X01", 100, 'A'}, {"W", 201, ' '}}
	if diff := cmp.Diff(want, ids); diff != "" {
		Te.Errorf("residues (-want +got):\n%s", diff)
	}
	at := S.Atoms[6]
	if at.Name != "NA" || at.ResName != "NA" || at.Symbol != "NA" || at.BFactor != 10 || !at.Het {
		Te.Errorf("unexpected atom %+v", at)
	}
}

func TestReadPDBErrors(Te *testing.T) {
	_, err := ReadPDB(strings.NewReader("HEADER nothing\nEND\n"), "x")
	if err == nil {
		Te.Error("expected an error for a file without atoms")
	}
	_, err = ReadPDB(strings.NewReader("ATOM      1  N   ALA A   1\n"), "x")
	if err == nil {
		Te.Error("expected an error for a truncated line")
	}
	bad := strings.Replace(pdbLine(1, fixture[0]), "   0.000", "   a.000", 1)
	_, err = ReadPDB(strings.NewReader(bad), "x")
	var e *Error
	if !errors.As(err, &e) || !e.Critical() {
		Te.Errorf("expected a critical *Error, got %v", err)
	}
}

func TestLookup(Te *testing.T) {
	S := readFixture(Te)
	cases := []struct {
		token string
		het   bool
		name  string
		natom int
	}{
		{"3QL8:A:X02:104", true, "X02", 2},
		{"3QL8:A:X01:100A", true, "X01", 1},
		{"3QL8:A:HOH:201", false, "HOH", 1},
		{"3QL8:A:HOH:201", true, "HOH", 1},
		{"3QL8:A:ALA:1", false, "ALA", 2},
		{"3ql8:B:NA:5", true, "NA", 1},
	}
	for _, c := range cases {
		e := locus.MustParse(c.token, "")
		e.SetHet(c.het)
		_, r, err := S.Resolve(e)
		if err != nil {
			Te.Errorf("%s (het %v): %v", c.token, c.het, err)
			continue
		}
		if r.Name != c.name || len(r.Atoms) != c.natom {
			Te.Errorf("%s: got residue %s with %d atoms", c.token, r.Name, len(r.Atoms))
		}
	}
	c, r, err := S.Resolve(locus.MustParse("3QL8:B", ""))
	if err != nil || r != nil || c.ID != "B" {
		Te.Errorf("chain lookup gave %v %v %v", c, r, err)
	}
	missing := []string{"3QL8:C", "3QL8:A:X02:105", "3QL8:A:X01:100", "3QL8:A:ALA:1"}
	for _, m := range missing {
		_, _, err := S.Resolve(locus.MustParse(m, ""))
		if !errors.Is(err, ErrNotFound) {
			Te.Errorf("%s: expected ErrNotFound, got %v", m, err)
		}
		var e *Error
		if errors.As(err, &e) && e.Critical() {
			Te.Errorf("%s: a missing residue should not be critical", m)
		}
	}
	if _, _, err := S.Resolve(locus.MustParse("1ABC:A", "")); err == nil || errors.Is(err, ErrNotFound) {
		Te.Errorf("expected a structure mismatch error, got %v", err)
	}
}

func TestCentroid(Te *testing.T) {
	S := readFixture(Te)
	_, r, err := S.Lookup(locus.MustParse("3QL8:A:X02:104", "").Key())
	if err != nil {
		Te.Fatal(err)
	}
	cent := S.Centroid(r, 0)
	want := []float64{3, 2, 2}
	for i, w := range want {
		if math.Abs(cent.At(0, i)-w) > 1e-6 {
			Te.Errorf("centroid %v, want %v", cent.RawRowView(0), want)
			break
		}
	}
}

func TestMultiModel(Te *testing.T) {
	S, err := ReadPDB(strings.NewReader(fixturePDB(3)), "3QL8")
	if err != nil {
		Te.Fatal(err)
	}
	if S.Models() != 3 || S.Len() != len(fixture) {
		Te.Fatalf("got %d models and %d atoms", S.Models(), S.Len())
	}
	_, r, err := S.Lookup(locus.Key{Chain: "A", Residue: true, HetField: "W", ResSeq: 201, ICode: ' '})
	if err != nil {
		Te.Fatal(err)
	}
	if x := S.Centroid(r, 2).At(0, 0); math.Abs(x-11) > 1e-6 {
		Te.Errorf("x in the third model is %f, want 11", x)
	}
	broken := fixturePDB(2)
	broken = broken[:strings.LastIndex(broken, "HETATM")] + "ENDMDL\nEND\n"
	if _, err := ReadPDB(strings.NewReader(broken), "3QL8"); err == nil {
		Te.Error("expected an error for models with different number of atoms")
	}
}

func TestCompressed(Te *testing.T) {
	dir := Te.TempDir()
	text := fixturePDB(1)
	if err := os.WriteFile(filepath.Join(dir, "3ql8.pdb"), []byte(text), 0o644); err != nil {
		Te.Fatal(err)
	}
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Write([]byte(text))
	gw.Close()
	if err := os.WriteFile(filepath.Join(dir, "1gz1.pdb.gz"), gz.Bytes(), 0o644); err != nil {
		Te.Fatal(err)
	}
	zw, err := zstd.NewWriter(nil)
	if err != nil {
		Te.Fatal(err)
	}
	zs := zw.EncodeAll([]byte(text), nil)
	zw.Close()
	//no extension at all, the magic bytes are enough.
	if err := os.WriteFile(filepath.Join(dir, "my_complex"), zs, 0o644); err != nil {
		Te.Fatal(err)
	}
	for _, id := range []string{"3QL8", "1gz1", "my_complex"} {
		p, err := FindPDBFile(dir, id)
		if err != nil {
			Te.Errorf("%s: %v", id, err)
			continue
		}
		S, err := ReadPDBFile(p)
		if err != nil {
			Te.Errorf("%s: %v", p, err)
			continue
		}
		if S.Len() != len(fixture) {
			Te.Errorf("%s: read %d atoms", p, S.Len())
		}
		if !S.Matches(id) {
			Te.Errorf("%s does not match %s (ID %s, file %s)", p, id, S.ID, S.File)
		}
	}
	if _, err := FindPDBFile(dir, "9XYZ"); !errors.Is(err, ErrNotFound) {
		Te.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := ReadPDBFile(filepath.Join(dir, "nope.pdb")); err == nil {
		Te.Error("expected an error opening a missing file")
	}
}

func TestWritePDB(Te *testing.T) {
	S := readFixture(Te)
	var out bytes.Buffer
	a := S.Chain("A").Residues()
	sel := []*Residue{a[1], a[2], S.Chain("B").Residues()[0]}
	if err := WritePDB(&out, S, sel, 0); err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(out.String(), "TER\n") {
		Te.Error("missing TER record between chains")
	}
	S2, err := ReadPDB(&out, "3QL8")
	if err != nil {
		Te.Fatal(err)
	}
	if S2.Len() != 4 {
		Te.Fatalf("extracted %d atoms, want 4", S2.Len())
	}
	for _, tok := range []string{"3QL8:A:X02:104", "3QL8:A:X01:100A", "3QL8:B:NA:5"} {
		if _, _, err := S2.Resolve(locus.MustParse(tok, "")); err != nil {
			Te.Errorf("%s not in the extracted structure: %v", tok, err)
		}
	}
	if err := WritePDB(&out, S, nil, 3); err == nil {
		Te.Error("expected an error for a missing model")
	}
	if err := WritePDB(terFailWriter{}, S, sel, 0); err == nil || !strings.Contains(err.Error(), "TER") {
		Te.Errorf("expected the failed TER write to be reported, got %v", err)
	}
}

// terFailWriter fails only when a TER record is written.
type terFailWriter struct{}

func (terFailWriter) Write(p []byte) (int, error) {
	if bytes.HasPrefix(p, []byte("TER")) {
		return 0, errors.New("disk full")
	}
	return len(p), nil
}

func TestIDFromFileName(Te *testing.T) {
	for in, want := range map[string]string{
		"3ql8.pdb":          "3ql8",
		"/data/3ql8.pdb.gz": "3ql8",
		"pdb3ql8.ent.gz":    "3ql8",
		"complex.pdb.zst":   "complex",
		"my_complex":        "my_complex",
	} {
		if got := IDFromFileName(in); got != want {
			Te.Errorf("IDFromFileName(%q)=%q, want %q", in, got, want)
		}
	}
}
