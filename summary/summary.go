// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package summary computes structural statistics for a JSON value in a
// single iterative pass.
package summary

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/mds/mapset"
)

// DefaultSampleLimit is the reservoir size used when none is specified.
const DefaultSampleLimit = 500

// Counts records the number of nodes of each JSON type.
type Counts struct {
	Objects  int `json:"objects" yaml:"objects"`
	Arrays   int `json:"arrays" yaml:"arrays"`
	Strings  int `json:"strings" yaml:"strings"`
	Numbers  int `json:"numbers" yaml:"numbers"`
	Booleans int `json:"booleans" yaml:"booleans"`
	Nulls    int `json:"nulls" yaml:"nulls"`
}

// NumberStats aggregates the numeric values of a document. Numbers that
// overflow float64 are counted in Counts.Numbers but not here.
type NumberStats struct {
	Count int     `json:"count" yaml:"count"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Mean  float64 `json:"mean" yaml:"mean"`
}

// ArrayStats aggregates the arrays of a document.
type ArrayStats struct {
	Count  int     `json:"count" yaml:"count"`
	AvgLen float64 `json:"avgLen" yaml:"avgLen"`
}

// KeyPresence reports the percentage of sampled objects having a key.
type KeyPresence struct {
	Key         string  `json:"key" yaml:"key"`
	PresencePct float64 `json:"presencePct" yaml:"presencePct"`
}

// An Overview is the structural summary of a document.
type Overview struct {
	TotalNodes  int           `json:"totalNodes" yaml:"totalNodes"`
	MaxDepth    int           `json:"maxDepth" yaml:"maxDepth"`
	Counts      Counts        `json:"counts" yaml:"counts"`
	NumberStats *NumberStats  `json:"numberStats,omitempty" yaml:"numberStats,omitempty"`
	ArrayStats  *ArrayStats   `json:"arrayStats,omitempty" yaml:"arrayStats,omitempty"`
	TopKeys     []KeyPresence `json:"topKeys,omitempty" yaml:"topKeys,omitempty"`
}

// Summarize computes the overview of v, sampling key presence over at most
// sampleLimit elements of a root array. If sampleLimit ≤ 0,
// DefaultSampleLimit is used.
func Summarize(v ast.Value, sampleLimit int) Overview {
	return Summarizer{SampleLimit: sampleLimit}.Summarize(v)
}

// A Summarizer carries the settings for computing overviews.
// A zero value is ready for use with default settings.
type Summarizer struct {
	// SampleLimit is the size of the key-presence reservoir.
	SampleLimit int

	// Rand, if non-nil, is the source of randomness for reservoir
	// replacement. If nil, a process-wide source is used.
	Rand *rand.Rand
}

type workItem struct {
	v     ast.Value
	depth int
}

// Summarize computes the overview of v.
func (s Summarizer) Summarize(v ast.Value) Overview {
	var out Overview
	var (
		numSum, numMin, numMax float64
		numCount               int
		arrCount, arrLenSum    int
	)

	// The root array, if any, whose direct object elements feed the sampler.
	rootArr, _ := v.(ast.Array)
	res := newReservoir(cmp.Or(max(s.SampleLimit, 0), DefaultSampleLimit), s.Rand)

	var seen mapset.Set[string] // keys of the current object
	stk := []workItem{{v: v, depth: 1}}
	for len(stk) != 0 {
		cur := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		out.TotalNodes++
		out.MaxDepth = max(out.MaxDepth, cur.depth)

		switch t := cur.v.(type) {
		case ast.Object:
			out.Counts.Objects++
			// A repeated key is visited only at its last occurrence, the one
			// Find and pointer lookup see.
			seen.Clear()
			for i := len(t) - 1; i >= 0; i-- {
				m := t[i]
				if seen.Has(m.Key) {
					continue
				} else if i > 0 {
					seen.Add(m.Key)
				}
				stk = append(stk, workItem{v: m.Value, depth: cur.depth + 1})
			}
		case ast.Array:
			out.Counts.Arrays++
			arrCount++
			arrLenSum += len(t)
			for _, e := range t {
				stk = append(stk, workItem{v: e, depth: cur.depth + 1})
			}
		case ast.String:
			out.Counts.Strings++
		case ast.Number:
			out.Counts.Numbers++
			f := t.Float()
			if math.IsInf(f, 0) || math.IsNaN(f) {
				break
			}
			if numCount == 0 {
				numMin, numMax = f, f
			} else {
				numMin, numMax = min(numMin, f), max(numMax, f)
			}
			numSum += f
			numCount++
		case ast.Bool:
			out.Counts.Booleans++
		case ast.NullType:
			out.Counts.Nulls++
		}
	}

	// Sample the root array's object elements in index order, so that the
	// reservoir sees a well-defined stream.
	for _, e := range rootArr {
		if obj, ok := e.(ast.Object); ok {
			res.offer(obj.Keys())
		}
	}

	if numCount > 0 {
		mean := numSum / float64(numCount)
		// Rounding in the sum can push the mean a hair outside the range.
		mean = min(max(mean, numMin), numMax)
		out.NumberStats = &NumberStats{Count: numCount, Min: numMin, Max: numMax, Mean: mean}
	}
	if arrCount > 0 {
		out.ArrayStats = &ArrayStats{Count: arrCount, AvgLen: float64(arrLenSum) / float64(arrCount)}
	}
	out.TopKeys = res.presence()
	return out
}

// A reservoir holds a bounded uniform sample of the key sets of a stream of
// objects.
type reservoir struct {
	limit   int
	seen    int
	samples [][]string
	rng     *rand.Rand
}

func newReservoir(limit int, rng *rand.Rand) *reservoir {
	return &reservoir{limit: limit, rng: rng}
}

func (r *reservoir) intN(n int) int {
	if r.rng != nil {
		return r.rng.IntN(n)
	}
	return rand.IntN(n)
}

// offer presents the key set of the next object in the stream.
func (r *reservoir) offer(keys []string) {
	r.seen++
	if len(r.samples) < r.limit {
		r.samples = append(r.samples, keys)
		return
	}
	// Replace a random sample with probability limit/seen.
	if j := r.intN(r.seen); j < r.limit {
		r.samples[j] = keys
	}
}

// presence reports the share of sampled objects having each key, in
// descending order of presence with ties broken by key.
func (r *reservoir) presence() []KeyPresence {
	if len(r.samples) == 0 {
		return nil
	}
	count := make(map[string]int)
	for _, keys := range r.samples {
		for _, k := range keys {
			count[k]++
		}
	}
	if len(count) == 0 {
		return nil
	}
	out := make([]KeyPresence, 0, len(count))
	for k, n := range count {
		out = append(out, KeyPresence{Key: k, PresencePct: float64(n) / float64(len(r.samples)) * 100})
	}
	slices.SortFunc(out, func(a, b KeyPresence) int {
		if c := cmp.Compare(b.PresencePct, a.PresencePct); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}
