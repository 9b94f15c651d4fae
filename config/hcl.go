/*
 * hcl.go, part of golocus.
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
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rmera/golocus/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ParseHCL reads parameters from HCL source. The body must contain only
// number attributes, one per parameter:
//
//	max_da_dist_hb_inter = 3.9
//	min_dha_ang_hb_inter = 90
//
// Simple expressions (3.9 + 0.1) are allowed, variables and functions are not.
func ParseHCL(src []byte, filename string) (map[string]float64, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	ret := make(map[string]float64, len(attrs))
	for _, attr := range sortedAttrs(attrs) {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parameter %s in %s: %w", attr.Name, filename, diags)
		}
		if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Number) {
			return nil, fmt.Errorf("parameter %s in %s (%s): must be a number, got %s", attr.Name, filename, attr.Range, val.Type().FriendlyName())
		}
		var v float64
		if err := gocty.FromCtyValue(val, &v); err != nil {
			return nil, fmt.Errorf("parameter %s in %s: %w", attr.Name, filename, err)
		}
		ret[attr.Name] = v
	}
	return ret, nil
}

func sortedAttrs(attrs hcl.Attributes) []*hcl.Attribute {
	ret := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		ret = append(ret, a)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// MergeHCL sets in C every parameter in the HCL source. Parameters not in the source
// are left alone. On error, C is not modified.
func (C *InteractionConfig) MergeHCL(src []byte, filename string) error {
	params, err := ParseHCL(src, filename)
	if err != nil {
		return err
	}
	for k, v := range params {
		C.Set(k, v)
	}
	return nil
}

// LoadHCL returns the default parameters updated with those in the HCL file path.
func LoadHCL(ctx context.Context, path string) (*InteractionConfig, error) {
	logger := ctxlog.FromContext(ctx)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading parameter file %s: %w", path, err)
	}
	C := Default()
	if err := C.MergeHCL(src, path); err != nil {
		return nil, err
	}
	logger.Debug("Interaction parameters loaded.", "path", path, "count", C.Len())
	return C, nil
}
