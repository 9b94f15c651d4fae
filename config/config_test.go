/*
 * config_test.go, part of golocus.
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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInteractionConfig(Te *testing.T) {
	C := New(nil)
	if C.Len() != 0 {
		Te.Errorf("empty config has %d parameters", C.Len())
	}
	C = New(map[string]float64{"param1": 2.5, "param2": 5})
	if v, err := C.Get("param1"); err != nil || v != 2.5 {
		Te.Errorf("param1=%v, %v", v, err)
	}
	C.Set("param2", 2)
	if v, _ := C.Get("param2"); v != 2 {
		Te.Errorf("param2=%v, want 2", v)
	}
	if diff := cmp.Diff([]string{"param1", "param2"}, C.Params()); diff != "" {
		Te.Errorf("params (-want +got):\n%s", diff)
	}
	C.Del("param1")
	if _, err := C.Get("param1"); !errors.Is(err, ErrUnknownParam) {
		Te.Errorf("expected ErrUnknownParam for a removed parameter, got %v", err)
	}
	C.Del("param1")
	orig := map[string]float64{"a": 1}
	C = New(orig)
	C.Set("a", 2)
	if orig["a"] != 1 {
		Te.Error("New does not copy its map")
	}
}

func TestDefault(Te *testing.T) {
	C := Default()
	if C.Len() != 58 {
		Te.Errorf("got %d default parameters, want 58", C.Len())
	}
	for _, p := range []string{"bsite_cutoff", "max_da_dist_hb_inter", "vdw_tolerance", "min_surf_size"} {
		if _, err := C.Get(p); err != nil {
			Te.Error(err)
		}
	}
	if _, err := C.Get("error"); !errors.Is(err, ErrUnknownParam) {
		Te.Errorf("expected ErrUnknownParam, got %v", err)
	}
	C.Set("boundary_cutoff", 5)
	if v, _ := C.Get("boundary_cutoff"); v != 5 {
		Te.Errorf("boundary_cutoff=%v", v)
	}
	if _, err := Default().Get("boundary_cutoff"); err == nil {
		Te.Error("changing a default config changed the defaults")
	}
}

func TestParseHCL(Te *testing.T) {
	src := []byte(`
max_da_dist_hb_inter = 3.5
min_dha_ang_hb_inter = 90 + 10
bsite_cutoff         = 7
`)
	params, err := ParseHCL(src, "params.hcl")
	if err != nil {
		Te.Fatal(err)
	}
	want := map[string]float64{"max_da_dist_hb_inter": 3.5, "min_dha_ang_hb_inter": 100, "bsite_cutoff": 7}
	if diff := cmp.Diff(want, params); diff != "" {
		Te.Errorf("params (-want +got):\n%s", diff)
	}
	bad := map[string]string{
		"syntax":   "max_da_dist_hb_inter = ",
		"string":   `max_da_dist_hb_inter = "far"`,
		"block":    "param \"x\" {\n value = 1\n}\n",
		"variable": "max_da_dist_hb_inter = cutoff",
		"bool":     "max_da_dist_hb_inter = true",
	}
	for what, s := range bad {
		if _, err := ParseHCL([]byte(s), what+".hcl"); err == nil {
			Te.Errorf("%s: expected an error", what)
		}
	}
}

func TestLoadHCL(Te *testing.T) {
	dir := Te.TempDir()
	path := filepath.Join(dir, "params.hcl")
	if err := os.WriteFile(path, []byte("max_da_dist_hb_inter = 3.5\nmy_cutoff = 1.25\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	C, err := LoadHCL(context.Background(), path)
	if err != nil {
		Te.Fatal(err)
	}
	if C.Len() != 59 {
		Te.Errorf("got %d parameters, want 59", C.Len())
	}
	if v, _ := C.Get("max_da_dist_hb_inter"); v != 3.5 {
		Te.Errorf("max_da_dist_hb_inter=%v, want 3.5", v)
	}
	if v, _ := C.Get("vdw_tolerance"); v != 0.1 {
		Te.Errorf("vdw_tolerance=%v, want the default 0.1", v)
	}
	if _, err := LoadHCL(context.Background(), filepath.Join(dir, "missing.hcl")); err == nil {
		Te.Error("expected an error for a missing file")
	}
	C = Default()
	if err := C.MergeHCL([]byte("a = 1\nb = \"x\"\n"), "bad.hcl"); err == nil {
		Te.Error("expected an error for a string parameter")
	}
	if _, err := C.Get("a"); err == nil {
		Te.Error("a failed merge changed the config")
	}
}
