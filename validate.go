/*
 * validate.go, part of golocus.
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
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// MaxPDBIDLen is the longest structure label accepted. Labels are often
// file names, so this is the usual file name limit.
const MaxPDBIDLen = 255

// MaxResNum is the largest residue number magnitude, 4 digits as in the PDB format.
const MaxResNum = 9999

// NoICode is the insertion code used when a residue has none.
const NoICode byte = ' '

var (
	// plain names (X02, HOH, 150) or charged ones (Na+, Cl-, N++, O--).
	resNameRe = regexp.MustCompile(`^(?:[A-Za-z0-9]{1,3}|[A-Za-z][A-Za-z0-9]?[+-]|[A-Za-z](?:\+\+|--))$`)
	resNumRe  = regexp.MustCompile(`^[+-]?[0-9]{1,4}$`)
)

// ValidatePDBID checks that s can be used as a structure label:
// between 1 and MaxPDBIDLen printable characters.
func ValidatePDBID(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return newError(Grammar, "ValidatePDBID", "empty structure label")
	}
	if n > MaxPDBIDLen {
		return newError(Grammar, "ValidatePDBID", "structure label has %d characters, the maximum is %d", n, MaxPDBIDLen)
	}
	if !utf8.ValidString(s) {
		return newError(Grammar, "ValidatePDBID", "structure label %q is not valid UTF-8", s)
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return newError(Grammar, "ValidatePDBID", "structure label %q contains a non printable character", s)
		}
	}
	return nil
}

// ValidateChain checks that s is exactly one ASCII letter or digit.
func ValidateChain(s string) error {
	if len(s) != 1 || !isAlnum(s[0]) {
		return newError(Grammar, "ValidateChain", "chain label %q must be a single letter or digit", s)
	}
	return nil
}

// ValidateResName checks a residue name. Accepted are 1 to 3 letters or digits,
// and ion-like names with a one or two character charge suffix, such as Na+, Cl- or N++.
// The total length is never more than 3.
func ValidateResName(s string) error {
	if !resNameRe.MatchString(s) {
		return newError(Grammar, "ValidateResName", "residue name %q is not 1-3 letters/digits with an optional charge", s)
	}
	return nil
}

// ValidateResNum parses a residue number in text form: an optional sign
// and 1 to 4 digits. A leading '+' is dropped, a '-' is kept.
func ValidateResNum(s string) (int, error) {
	if !resNumRe.MatchString(s) {
		return 0, newError(Grammar, "ValidateResNum", "residue number %q must be an optional sign followed by 1 to 4 digits", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		//the regexp should make this impossible.
		return 0, newError(Grammar, "ValidateResNum", "residue number %q: %s", s, err.Error())
	}
	return n, nil
}

// ValidateResNumInt checks that n fits in 4 digits.
func ValidateResNumInt(n int) error {
	if n > MaxResNum || n < -MaxResNum {
		return newError(Grammar, "ValidateResNumInt", "residue number %d has more than 4 digits", n)
	}
	return nil
}

// ValidateICode checks an insertion code and returns it as a byte.
// The empty string and a blank both mean "no code" and give NoICode.
func ValidateICode(s string) (byte, error) {
	if s == "" || s == " " {
		return NoICode, nil
	}
	if len(s) != 1 || !isAlpha(s[0]) {
		return 0, newError(Grammar, "ValidateICode", "insertion code %q must be a single letter", s)
	}
	return s[0], nil
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
