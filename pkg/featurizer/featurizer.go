// Copyright © 2019 Shunsuke Tonogai

// Package featurizer computes compositional descriptors: numeric
// feature vectors derived from a chemical composition and a table of
// element properties. Each featurizer is a weighted column reduction
// over the element rows named by the composition.
package featurizer

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

// Composition maps element symbols to their amounts in a compound,
// e.g. {"Fe": 2, "O": 3} for Fe2O3.
type Composition map[string]float64

type errString string

func (e errString) Error() string { return string(e) }

const (
	// ErrExclusive is returned when both Include and Exclude are set.
	ErrExclusive errString = `"include" and "exclude" are mutually exclusive`

	// ErrUnknownElement is returned when a composition names an element
	// absent from the property table.
	ErrUnknownElement errString = "element not in property table"
)

// Featurizer turns one composition into a feature vector. Labels
// returns the vector's feature names, aligned with Featurize output.
type Featurizer interface {
	Featurize(comp Composition) ([]float64, error)
	Labels() []string
}

type config struct {
	include []string
	exclude []string
}

// Option narrows the element property columns used for features.
type Option func(*config)

// Include keeps only the given property columns
func Include(columns ...string) Option {
	return func(c *config) {
		c.include = columns
	}
}

// Exclude drops the given property columns
func Exclude(columns ...string) Option {
	return func(c *config) {
		c.exclude = columns
	}
}

// view applies the column filters to the element table.
func view(elements *tabular.Table, opts []Option) (*tabular.Table, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if len(c.include) > 0 && len(c.exclude) > 0 {
		return nil, errors.New("configuring featurizer").Wrap(ErrExclusive)
	}
	if len(c.include) > 0 {
		return elements.Select(c.include...)
	}
	if len(c.exclude) > 0 {
		return elements.Drop(c.exclude...)
	}
	return elements, nil
}

// rows gathers element property rows and amounts for a composition,
// in deterministic symbol order.
func rows(elements *tabular.Table, comp Composition) ([][]float64, []float64, error) {
	symbols := make([]string, 0, len(comp))
	for s := range comp {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	props := make([][]float64, 0, len(symbols))
	amounts := make([]float64, 0, len(symbols))
	for _, s := range symbols {
		row, ok := elements.Row(s)
		if !ok {
			return nil, nil, errors.Newf("element %q", s).Wrap(ErrUnknownElement)
		}
		props = append(props, row)
		amounts = append(amounts, comp[s])
	}
	return props, amounts, nil
}

func prefixed(prefix string, columns []string) []string {
	out := make([]string, len(columns))
	for j, c := range columns {
		out[j] = prefix + c
	}
	return out
}

// ParseComposition reads the "Fe:2,O:3" notation used by the CLI.
func ParseComposition(s string) (Composition, error) {
	comp := make(Composition)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, errors.Newf("bad composition term %q, want symbol:amount", part)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, errors.Newf("bad amount in composition term %q", part).Wrap(err)
		}
		comp[strings.TrimSpace(kv[0])] = n
	}
	if len(comp) == 0 {
		return nil, errors.Newf("empty composition %q", s)
	}
	return comp, nil
}

// WeightedAverage is the amount-fraction weighted mean of element
// properties.
type WeightedAverage struct {
	elements *tabular.Table
	labels   []string
}

// NewWeightedAverage builds the featurizer over an element table.
func NewWeightedAverage(elements *tabular.Table, opts ...Option) (*WeightedAverage, error) {
	v, err := view(elements, opts)
	if err != nil {
		return nil, err
	}
	return &WeightedAverage{elements: v, labels: prefixed("ave:", v.Columns())}, nil
}

// Labels implements Featurizer.
func (f *WeightedAverage) Labels() []string { return f.labels }

// Featurize implements Featurizer.
func (f *WeightedAverage) Featurize(comp Composition) ([]float64, error) {
	props, amounts, err := rows(f.elements, comp)
	if err != nil {
		return nil, err
	}
	return weightedDot(props, fractions(amounts)), nil
}

// WeightedSum is the amount weighted sum of element properties.
type WeightedSum struct {
	elements *tabular.Table
	labels   []string
}

// NewWeightedSum builds the featurizer over an element table.
func NewWeightedSum(elements *tabular.Table, opts ...Option) (*WeightedSum, error) {
	v, err := view(elements, opts)
	if err != nil {
		return nil, err
	}
	return &WeightedSum{elements: v, labels: prefixed("sum:", v.Columns())}, nil
}

// Labels implements Featurizer.
func (f *WeightedSum) Labels() []string { return f.labels }

// Featurize implements Featurizer.
func (f *WeightedSum) Featurize(comp Composition) ([]float64, error) {
	props, amounts, err := rows(f.elements, comp)
	if err != nil {
		return nil, err
	}
	return weightedDot(props, amounts), nil
}

// WeightedVariance is the amount-fraction weighted variance of element
// properties around their weighted mean.
type WeightedVariance struct {
	elements *tabular.Table
	labels   []string
}

// NewWeightedVariance builds the featurizer over an element table.
func NewWeightedVariance(elements *tabular.Table, opts ...Option) (*WeightedVariance, error) {
	v, err := view(elements, opts)
	if err != nil {
		return nil, err
	}
	return &WeightedVariance{elements: v, labels: prefixed("var:", v.Columns())}, nil
}

// Labels implements Featurizer.
func (f *WeightedVariance) Labels() []string { return f.labels }

// Featurize implements Featurizer.
func (f *WeightedVariance) Featurize(comp Composition) ([]float64, error) {
	props, amounts, err := rows(f.elements, comp)
	if err != nil {
		return nil, err
	}
	w := fractions(amounts)
	mean := weightedDot(props, w)
	out := make([]float64, len(mean))
	for i, row := range props {
		for j := range out {
			d := row[j] - mean[j]
			out[j] += w[i] * d * d
		}
	}
	return out, nil
}

// Max is the column-wise maximum of element properties.
type Max struct {
	elements *tabular.Table
	labels   []string
}

// NewMax builds the featurizer over an element table.
func NewMax(elements *tabular.Table, opts ...Option) (*Max, error) {
	v, err := view(elements, opts)
	if err != nil {
		return nil, err
	}
	return &Max{elements: v, labels: prefixed("max:", v.Columns())}, nil
}

// Labels implements Featurizer.
func (f *Max) Labels() []string { return f.labels }

// Featurize implements Featurizer.
func (f *Max) Featurize(comp Composition) ([]float64, error) {
	props, _, err := rows(f.elements, comp)
	if err != nil {
		return nil, err
	}
	return reduce(props, func(a, b float64) bool { return b > a }), nil
}

// Min is the column-wise minimum of element properties.
type Min struct {
	elements *tabular.Table
	labels   []string
}

// NewMin builds the featurizer over an element table.
func NewMin(elements *tabular.Table, opts ...Option) (*Min, error) {
	v, err := view(elements, opts)
	if err != nil {
		return nil, err
	}
	return &Min{elements: v, labels: prefixed("min:", v.Columns())}, nil
}

// Labels implements Featurizer.
func (f *Min) Labels() []string { return f.labels }

// Featurize implements Featurizer.
func (f *Min) Featurize(comp Composition) ([]float64, error) {
	props, _, err := rows(f.elements, comp)
	if err != nil {
		return nil, err
	}
	return reduce(props, func(a, b float64) bool { return b < a }), nil
}

// fractions normalizes amounts to weights summing to 1.
func fractions(amounts []float64) []float64 {
	var total float64
	for _, n := range amounts {
		total += n
	}
	out := make([]float64, len(amounts))
	for i, n := range amounts {
		out[i] = n / total
	}
	return out
}

// weightedDot computes w . rows, column-wise. NaN cells propagate.
func weightedDot(props [][]float64, w []float64) []float64 {
	if len(props) == 0 {
		return nil
	}
	out := make([]float64, len(props[0]))
	for i, row := range props {
		for j, v := range row {
			out[j] += w[i] * v
		}
	}
	return out
}

// reduce folds rows column-wise, keeping the cell preferred by better.
// NaN cells win any comparison, matching the propagation behavior of
// the weighted reductions.
func reduce(props [][]float64, better func(a, b float64) bool) []float64 {
	if len(props) == 0 {
		return nil
	}
	out := make([]float64, len(props[0]))
	copy(out, props[0])
	for _, row := range props[1:] {
		for j, v := range row {
			if math.IsNaN(out[j]) {
				continue
			}
			if math.IsNaN(v) || better(out[j], v) {
				out[j] = v
			}
		}
	}
	return out
}
