/*
 * key.go, part of golocus.
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

// Hetero field markers, as used by the residue ids of the structure model.
const (
	HetStandard = " "
	HetWater    = "W"
	HetPrefix   = "H_"
)

// Key is what a structure model needs to find what an Entry names.
// If Residue is false, the key is just the chain label. Otherwise,
// HetField, ResSeq and ICode identify a residue within that chain.
type Key struct {
	Chain    string
	Residue  bool
	HetField string
	ResSeq   int
	ICode    byte
}

// IsWater returns true for the residue names used for water.
func IsWater(name string) bool {
	return name == "HOH" || name == "WAT"
}

// HetField returns the hetero marker for a residue called name.
// Waters are always HetWater. Other residues are HetPrefix+name if het is true
// and HetStandard otherwise.
func HetField(name string, het bool) string {
	switch {
	case IsWater(name):
		return HetWater
	case het:
		return HetPrefix + name
	}
	return HetStandard
}

// Key returns the lookup key for the entry.
func (E *Entry) Key() Key {
	if E.res == nil {
		return Key{Chain: E.chain}
	}
	return Key{
		Chain:    E.chain,
		Residue:  true,
		HetField: HetField(E.res.Name, E.het),
		ResSeq:   E.res.Num,
		ICode:    E.res.ICode,
	}
}

// String renders the key as a bare chain label, or a ('H_X02', 104, ' ') triple.
func (K Key) String() string {
	if !K.Residue {
		return K.Chain
	}
	return fmt.Sprintf("('%s', %d, '%c')", K.HetField, K.ResSeq, K.ICode)
}
