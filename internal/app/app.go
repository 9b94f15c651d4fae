/*
 * app.go, part of golocus.
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

// Package app runs a batch of locus entries: parses them, and, if a structure
// directory is given, resolves them in their structures.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	locus "github.com/rmera/golocus"
	"github.com/rmera/golocus/config"
	"github.com/rmera/golocus/internal/ctxlog"
	"github.com/rmera/golocus/progress"
	"github.com/rmera/golocus/structure"
)

// Config holds everything the command line can set.
type Config struct {
	Tokens    []string
	Manifest  string
	Sep       string
	PDBDir    string
	Params    string
	Standard  bool
	Extract   string
	Workers   int
	LogFormat string
	LogLevel  string
}

// Job is one entry to process, with the field settings that follow it in a manifest.
type Job struct {
	Source   string //where the job came from, for error messages
	Token    string
	Settings []string
}

// Report is what processing a Job gives.
type Report struct {
	Entry     *locus.Entry
	Key       locus.Key
	Structure *structure.Structure //nil if entries are not resolved
	Chain     *structure.Chain
	Residue   *structure.Residue //nil for chain entries
	Atoms     int
	Centroid  []float64
}

// FailedError is returned by Run when some entries could not be processed.
type FailedError struct {
	Failed, Total int
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%d of %d entries failed", e.Failed, e.Total)
}

// Jobs collects the jobs from the command line tokens and the manifest file, in that order.
func Jobs(cfg *Config) ([]Job, error) {
	var jobs []Job
	for i, t := range cfg.Tokens {
		jobs = append(jobs, Job{Source: fmt.Sprintf("argument %d", i+1), Token: t})
	}
	if cfg.Manifest == "" {
		return jobs, nil
	}
	f, err := os.Open(cfg.Manifest)
	if err != nil {
		return nil, fmt.Errorf("error opening manifest: %w", err)
	}
	defer f.Close()
	mjobs, err := ReadManifest(f, cfg.Manifest)
	if err != nil {
		return nil, err
	}
	return append(jobs, mjobs...), nil
}

// ReadManifest reads one job per line. The first field of the line is the entry, the
// rest are field=value settings. Empty lines and lines starting with # are skipped.
func ReadManifest(r io.Reader, name string) ([]Job, error) {
	var jobs []Job
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		jobs = append(jobs, Job{Source: fmt.Sprintf("%s:%d", name, line), Token: fields[0], Settings: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading manifest %s: %w", name, err)
	}
	return jobs, nil
}

// structCache reads each structure file at most once, even with concurrent requests.
// Entries are keyed by file path, so labels that differ only in case share a slot.
type structCache struct {
	dir   string
	mu    sync.Mutex
	m     map[string]*cached
	reads atomic.Int64
}

type cached struct {
	once sync.Once
	s    *structure.Structure
	err  error
}

func newStructCache(dir string) *structCache {
	return &structCache{dir: dir, m: make(map[string]*cached)}
}

func (c *structCache) get(ctx context.Context, id string) (*structure.Structure, error) {
	path, err := structure.FindPDBFile(c.dir, id)
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	c.mu.Lock()
	e, ok := c.m[path]
	if !ok {
		e = &cached{}
		c.m[path] = e
	}
	c.mu.Unlock()
	e.once.Do(func() {
		ctxlog.FromContext(ctx).Info("Reading structure.", "id", id, "path", path)
		c.reads.Add(1)
		e.s, e.err = structure.ReadPDBFile(path)
	})
	return e.s, e.err
}

// process handles one job. cache is nil when entries are not to be resolved.
func process(ctx context.Context, cfg *Config, cache *structCache, j Job) (*Report, error) {
	e, err := locus.Parse(j.Token, cfg.Sep)
	if err != nil {
		return nil, err
	}
	if cfg.Standard {
		e.SetHet(false)
	}
	for _, s := range j.Settings {
		field, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("setting %q is not field=value", s)
		}
		if err := e.Set(field, value); err != nil {
			return nil, err
		}
	}
	rep := &Report{Entry: e, Key: e.Key()}
	if cache == nil {
		return rep, nil
	}
	s, err := cache.get(ctx, e.PDBID())
	if err != nil {
		return nil, err
	}
	c, r, err := s.Resolve(e)
	if err != nil {
		return nil, err
	}
	rep.Structure, rep.Chain, rep.Residue = s, c, r
	if r == nil {
		for _, res := range c.Residues() {
			rep.Atoms += len(res.Atoms)
		}
		return rep, nil
	}
	rep.Atoms = len(r.Atoms)
	rep.Centroid = s.Centroid(r, 0).RawRowView(0)
	return rep, nil
}

// Run processes every job and writes one line per successful entry to out:
// the input, the canonical entry and its key, plus the atom count and centroid if
// resolved. Failures go to errOut. If any entry fails, a *FailedError is returned
// after everything has been processed.
func Run(ctx context.Context, cfg *Config, out, errOut io.Writer) error {
	logger := ctxlog.FromContext(ctx)
	if cfg.Params != "" {
		params, err := config.LoadHCL(ctx, cfg.Params)
		if err != nil {
			return err
		}
		logger.Info("Interaction parameters validated.", "path", cfg.Params, "count", params.Len())
	}
	jobs, err := Jobs(cfg)
	if err != nil {
		return err
	}
	logger.Debug("Jobs collected.", "count", len(jobs))
	var cache *structCache
	if cfg.PDBDir != "" {
		cache = newStructCache(cfg.PDBDir)
	}
	res := progress.Run(ctx, jobs, cfg.Workers, func(ctx context.Context, j Job) (*Report, error) {
		return process(ctx, cfg, cache, j)
	})
	for _, d := range res.Items() {
		if d.Err != nil {
			fmt.Fprintf(errOut, "%s\t%s\t%v\n", d.Input.Source, d.Input.Token, d.Err)
			continue
		}
		r := d.Output
		fmt.Fprintf(out, "%s\t%s\t%s", d.Input.Token, r.Entry, r.Key)
		if r.Structure != nil {
			fmt.Fprintf(out, "\t%d", r.Atoms)
			if r.Centroid != nil {
				fmt.Fprintf(out, "\t%.3f %.3f %.3f", r.Centroid[0], r.Centroid[1], r.Centroid[2])
			}
		}
		fmt.Fprintln(out)
	}
	if cfg.Extract != "" {
		if err := extract(ctx, cfg.Extract, res.Outputs()); err != nil {
			return err
		}
	}
	if n := len(res.Errors()); n > 0 {
		return &FailedError{Failed: n, Total: res.Len()}
	}
	return nil
}

// extract writes, for each structure, the residues resolved in it to dir/<ID>_selection.pdb.
// A chain entry selects every residue in the chain.
func extract(ctx context.Context, dir string, reps []progress.Pair[Job, *Report]) error {
	logger := ctxlog.FromContext(ctx)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating extract directory: %w", err)
	}
	//grouped by ID, as that names the output file.
	selected := make(map[string][]*structure.Residue)
	structs := make(map[string]*structure.Structure)
	seen := make(map[*structure.Residue]bool)
	for _, p := range reps {
		r := p.Output
		if prev, ok := structs[r.Structure.ID]; ok && prev != r.Structure {
			return fmt.Errorf("structures %s and %s both have the id %s", prev.File, r.Structure.File, prev.ID)
		}
		structs[r.Structure.ID] = r.Structure
		res := []*structure.Residue{r.Residue}
		if r.Residue == nil {
			res = r.Chain.Residues()
		}
		for _, v := range res {
			if !seen[v] {
				seen[v] = true
				selected[r.Structure.ID] = append(selected[r.Structure.ID], v)
			}
		}
	}
	ids := make([]string, 0, len(structs))
	for id := range structs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := structs[id]
		name := filepath.Join(dir, s.ID+"_selection.pdb")
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("error creating %s: %w", name, err)
		}
		if err := structure.WritePDB(f, s, selected[id], 0); err != nil {
			f.Close()
			return fmt.Errorf("error writing %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("Residues extracted.", "path", name, "residues", len(selected[id]))
	}
	return nil
}
