/*
 * cli.go, part of golocus.
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

// Package cli turns command line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/rmera/golocus/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("golocus", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
golocus - validate, canonicalize and resolve molecular locus identifiers.

Usage:
  golocus [options] ENTRY...
  golocus [options] -manifest FILE

Entries look like PDB:CHAIN or PDB:CHAIN:NAME:NUMBER[ICODE], e.g. 3QL8:A:X02:104.
Manifest lines hold one entry, optionally followed by field=value settings
(is_het=false, sep=_). Empty lines and lines starting with # are ignored.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "File with one entry per line.")
	sepFlag := flagSet.String("sep", ":", "Field separator used in the entries.")
	pdbDirFlag := flagSet.String("pdb-dir", "", "Directory with the structure files. If set, entries are looked up in them.")
	paramsFlag := flagSet.String("params", "", "HCL file with interaction parameters. It is only validated (every value must be a number), entries do not use it.")
	standardFlag := flagSet.Bool("standard", false, "Treat residues as standard (not hetero) groups.")
	extractFlag := flagSet.String("extract", "", "Directory where the resolved residues of each structure are written as <ID>_selection.pdb.")
	workersFlag := flagSet.Int("workers", 4, "Number of concurrent workers.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	tokens := flagSet.Args()
	if len(tokens) == 0 && *manifestFlag == "" {
		slog.Debug("No entries provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if utf8.RuneCountInString(*sepFlag) != 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid sep: must be a single character"}
	}
	if *extractFlag != "" && *pdbDirFlag == "" {
		return nil, false, &ExitError{Code: 2, Message: "extract requires pdb-dir"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if *workersFlag < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be at least 1"}
	}

	config := &app.Config{
		Tokens:    tokens,
		Manifest:  *manifestFlag,
		Sep:       *sepFlag,
		PDBDir:    *pdbDirFlag,
		Params:    *paramsFlag,
		Standard:  *standardFlag,
		Extract:   *extractFlag,
		Workers:   *workersFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	}
	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
