package stats

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean/variance (Welford) with min and max.
type Statistic struct {
	totalIterations int
	min             float64
	max             float64

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.totalIterations++
	if s.totalIterations == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.min = val
		s.max = val
		return
	}
	s.newM = s.oldM + (val-s.oldM)/float64(s.totalIterations)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	if s.totalIterations > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.totalIterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.totalIterations-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Min() float64 { return s.min }
func (s *Statistic) Max() float64 { return s.max }

func (s *Statistic) Iterations() int {
	return s.totalIterations
}

// Histogram counts occurrences of small integer values, e.g. rounds taken.
type Histogram map[int]int

func (h Histogram) Add(v int) { h[v]++ }

// Keys returns the recorded values in ascending order.
func (h Histogram) Keys() []int {
	keys := lo.Keys(h)
	slices.Sort(keys)
	return keys
}

// Total is the number of recorded values.
func (h Histogram) Total() int {
	return lo.Sum(lo.Values(h))
}

// Plot draws a bar chart of values using one bin per distinct integer in
// [min, max].
func Plot(w io.Writer, values []int) error {
	if len(values) == 0 {
		_, err := fmt.Fprintln(w, "(no data)")
		return err
	}
	data := lo.Map(values, func(v int, _ int) float64 { return float64(v) })
	bins := lo.Max(values) - lo.Min(values) + 1
	h := histogram.Hist(bins, data)
	return histogram.Fprint(w, h, histogram.Linear(40))
}
