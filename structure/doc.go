/*
 * doc.go, part of golocus.
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

/*
Package structure is a small structure model, just enough to find what a locus.Entry names.

It reads the ATOM and HETATM records of PDB files (plain, gzip or zstd compressed) into
chains and residues. Residues are keyed the way locus.Key expects: a hetero field
(" " for standard residues, "W" for waters, "H_"+name for other hetero groups), the
residue number and the insertion code.
Coordinates are kept in one gonum matrix per model.
*/
package structure
