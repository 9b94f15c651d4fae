/*
 * progress.go, part of golocus.
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

// Package progress runs a function over a batch of inputs with a pool of
// goroutines, and collects what came out of each one, errors included.
package progress

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rmera/golocus/internal/ctxlog"
)

// Data is the outcome of processing one input. Err is nil if it went well.
type Data[I, O any] struct {
	Input  I
	Output O
	Err    error
}

// Pair is an input with the output it produced.
type Pair[I, O any] struct {
	Input  I
	Output O
}

// Failure is an input with the error it produced.
type Failure[I any] struct {
	Input I
	Err   error
}

// Result accumulates Data. It is safe for concurrent use.
type Result[I, O any] struct {
	mu    sync.Mutex
	items []Data[I, O]
}

// NewResult returns a Result holding items.
func NewResult[I, O any](items ...Data[I, O]) *Result[I, O] {
	R := &Result[I, O]{}
	R.items = append(R.items, items...)
	return R
}

// Append adds d at the end of the result.
func (R *Result[I, O]) Append(d Data[I, O]) {
	R.mu.Lock()
	defer R.mu.Unlock()
	R.items = append(R.items, d)
}

// Len returns the number of items.
func (R *Result[I, O]) Len() int {
	R.mu.Lock()
	defer R.mu.Unlock()
	return len(R.items)
}

// Items returns a copy of all the items, in order.
func (R *Result[I, O]) Items() []Data[I, O] {
	R.mu.Lock()
	defer R.mu.Unlock()
	return append([]Data[I, O](nil), R.items...)
}

// Inputs returns every input, failed or not.
func (R *Result[I, O]) Inputs() []I {
	R.mu.Lock()
	defer R.mu.Unlock()
	ret := make([]I, 0, len(R.items))
	for _, d := range R.items {
		ret = append(ret, d.Input)
	}
	return ret
}

// Outputs returns the inputs that were processed without error, with their outputs.
func (R *Result[I, O]) Outputs() []Pair[I, O] {
	R.mu.Lock()
	defer R.mu.Unlock()
	var ret []Pair[I, O]
	for _, d := range R.items {
		if d.Err == nil {
			ret = append(ret, Pair[I, O]{d.Input, d.Output})
		}
	}
	return ret
}

// Errors returns the inputs that failed, with their errors.
func (R *Result[I, O]) Errors() []Failure[I] {
	R.mu.Lock()
	defer R.mu.Unlock()
	var ret []Failure[I]
	for _, d := range R.items {
		if d.Err != nil {
			ret = append(ret, Failure[I]{d.Input, d.Err})
		}
	}
	return ret
}

// Run calls fn on every input using workers goroutines (1 if workers < 1), and returns
// the results in the order of inputs. Once ctx is done no more inputs are dispatched,
// and those left get ctx.Err() as their error.
func Run[I, O any](ctx context.Context, inputs []I, workers int, fn func(context.Context, I) (O, error)) *Result[I, O] {
	logger := ctxlog.FromContext(ctx)
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) && len(inputs) > 0 {
		workers = len(inputs)
	}
	out := make([]Data[I, O], len(inputs))
	done := make([]bool, len(inputs))
	jobs := make(chan int)
	var failed, finished atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				o, err := fn(ctx, inputs[i])
				out[i] = Data[I, O]{Input: inputs[i], Output: o, Err: err}
				done[i] = true
				n := finished.Add(1)
				if err != nil {
					failed.Add(1)
					logger.Debug("Input failed.", "index", i, "error", err)
				}
				logger.Debug("Progress.", "done", n, "total", len(inputs))
			}
		}()
	}
dispatch:
	for i := range inputs {
		if ctx.Err() != nil {
			logger.Warn("Batch cancelled.", "dispatched", i, "total", len(inputs))
			break
		}
		select {
		case <-ctx.Done():
			logger.Warn("Batch cancelled.", "dispatched", i, "total", len(inputs))
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	for i := range out {
		if !done[i] {
			out[i] = Data[I, O]{Input: inputs[i], Err: ctx.Err()}
		}
	}
	R := &Result[I, O]{items: out}
	logger.Info("Batch finished.", "total", len(inputs), "processed", finished.Load(), "failed", failed.Load())
	return R
}
