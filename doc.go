/*
 * doc.go, part of golocus.
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
 */

/*
Package locus provides Entry, a compact identifier for a chain, or for a residue
(ligand, ion, water) within a chain, of a macromolecular structure.

Entries look like this:

	3QL8:A            chain A of 3QL8
	3QL8:A:X02:104    residue X02 104 of chain A
	3QL8:A:X01:100A   same, with insertion code A
	3QL8:A:Na+:-5     negative residue numbers and charged names are fine

The structure label can be a PDB code or a file name of up to 255 characters.
The separator is ':' by default, and can be changed for labels that contain it.

An Entry is validated when built, either from fields (New, NewResidueEntry, FromFields)
or from text (Parse). After that, only the hetero flag and the separator can change.
Entry.String gives back the text form, and Entry.Key gives the residue key used
by the structure package (and by most PDB libraries) to find the residue.

Errors are of type *Error, and errors.Is can be used with ErrGrammar, ErrIllegalArgument
and ErrImmutableField to tell apart malformed fields, inconsistent arguments and attempts
to change an Entry.
*/
package locus
