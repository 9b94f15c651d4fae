/*
 * ctxlog_test.go, part of golocus.
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

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestFromContext(Te *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		Te.Error("expected the default logger for a bare context")
	}
	var buf bytes.Buffer
	logger := New(&buf, "text", "info")
	ctx := WithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		Te.Error("logger not carried by the context")
	}
}

func TestNew(Te *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", "warn")
	logger.Info("hidden")
	logger.Warn("shown", "entry", "3QL8:A")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		Te.Fatalf("expected one record, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		Te.Fatal(err)
	}
	if rec["msg"] != "shown" || rec["entry"] != "3QL8:A" {
		Te.Errorf("unexpected record %v", rec)
	}
	buf.Reset()
	New(&buf, "text", "debug").Debug("details")
	if !strings.Contains(buf.String(), "msg=details") {
		Te.Errorf("unexpected text record %q", buf.String())
	}
}
