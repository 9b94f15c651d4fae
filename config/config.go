/*
 * config.go, part of golocus.
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

// Package config holds the named numeric parameters (distances, angles, tolerances)
// used to decide whether two groups interact. Parameters can be read from HCL files.
package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownParam is returned when asking for a parameter that is not set.
var ErrUnknownParam = errors.New("config: unknown parameter")

// InteractionConfig is a set of named parameters. The zero value is not usable,
// use New or Default.
type InteractionConfig struct {
	params map[string]float64
}

// New returns a config with a copy of params. A nil map gives an empty config.
func New(params map[string]float64) *InteractionConfig {
	C := &InteractionConfig{params: make(map[string]float64, len(params))}
	for k, v := range params {
		C.params[k] = v
	}
	return C
}

// Default returns a config with the default interaction parameters.
func Default() *InteractionConfig {
	return New(defaults)
}

// Get returns the value of the parameter name.
func (C *InteractionConfig) Get(name string) (float64, error) {
	v, ok := C.params[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return v, nil
}

// Set sets the parameter name to v, adding it if needed.
func (C *InteractionConfig) Set(name string, v float64) {
	C.params[name] = v
}

// Del removes the parameter name. Removing a parameter that is not there is not an error.
func (C *InteractionConfig) Del(name string) {
	delete(C.params, name)
}

// Params returns the names of the parameters, sorted.
func (C *InteractionConfig) Params() []string {
	ret := make([]string, 0, len(C.params))
	for k := range C.params {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Len returns the number of parameters set.
func (C *InteractionConfig) Len() int {
	return len(C.params)
}

// Copy returns an independent copy of C.
func (C *InteractionConfig) Copy() *InteractionConfig {
	return New(C.params)
}

// Distances in Angstrom, angles in degrees.
var defaults = map[string]float64{
	"bsite_cutoff":                            6.2,
	"cache_cutoff":                            10,
	"max_an_ey_ang_ortho_multipolar_inter":    110,
	"max_an_ey_ang_para_multipolar_inter":     25,
	"max_cc_dist_amide_pi_inter":              4.5,
	"max_cc_dist_pi_pi_inter":                 6,
	"max_da_dist_hb_inter":                    3.9,
	"max_da_dist_whb_inter":                   4,
	"max_dc_dist_whb_inter":                   3.9,
	"max_dihed_ang_amide_pi_inter":            30,
	"max_dihed_ang_slope_pi_pi_inter":         30,
	"max_disp_ang_ion_multipole_inter":        40,
	"max_disp_ang_multipolar_inter":           40,
	"max_disp_ang_offset_pi_pi_inter":         30,
	"max_disp_ang_pi_pi_inter":                30,
	"max_disp_ang_whb_inter":                  40,
	"max_disp_ang_xbond_inter":                60,
	"max_disp_ang_ybond_inter":                60,
	"max_dist_attract_inter":                  4,
	"max_dist_cation_pi_inter":                6,
	"max_dist_hydrop_inter":                   4.5,
	"max_dist_proximal":                       6,
	"max_dist_repuls_inter":                   6,
	"max_ha_dist_hb_inter":                    2.5,
	"max_ha_dist_whb_inter":                   3,
	"max_hc_dist_whb_inter":                   2.9,
	"max_id_dist_ion_multipole_inter":         4.5,
	"max_ma_dist_metal_coord":                 2.8,
	"max_ne_dist_multipolar_inter":            4,
	"max_ney_ang_multipolar_inter":            110,
	"max_xa_dist_xbond_inter":                 4,
	"max_xc_dist_xbond_inter":                 4,
	"max_ya_dist_ybond_inter":                 4,
	"max_yc_dist_ybond_inter":                 4,
	"min_an_ey_ang_antipara_multipolar_inter": 155,
	"min_an_ey_ang_ortho_multipolar_inter":    70,
	"min_bond_separation":                     3,
	"min_bond_separation_for_clash":           4,
	"min_cxa_ang_xbond_inter":                 120,
	"min_dar_ang_hb_inter":                    90,
	"min_dar_ang_whb_inter":                   90,
	"min_dha_ang_hb_inter":                    90,
	"min_dha_ang_whb_inter":                   110,
	"min_dhc_ang_whb_inter":                   110,
	"min_dihed_ang_slope_pi_pi_inter":         60,
	"min_disp_ang_offset_pi_pi_inter":         30,
	"min_dist_proximal":                       2,
	"min_har_ang_hb_inter":                    90,
	"min_har_ang_whb_inter":                   90,
	"min_idy_ang_ion_multipole_inter":         120,
	"min_inter_atom_in_surf":                  1,
	"min_ney_ang_multipolar_inter":            70,
	"min_rya_ang_ybond_inter":                 120,
	"min_surf_size":                           1,
	"min_xar_ang_xbond_inter":                 80,
	"min_yan_ang_ybond_inter":                 140,
	"vdw_clash_tolerance":                     0.6,
	"vdw_tolerance":                           0.1,
}
