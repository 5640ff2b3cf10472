// Copyright © 2019 Shunsuke Tonogai

package featurizer

import (
	"strconv"

	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

// Compositions runs all five compositional featurizers and
// concatenates their outputs into one feature vector per compound.
type Compositions struct {
	feats  []Featurizer
	labels []string
}

// NewCompositions builds the aggregate featurizer over an element
// table. The column filters apply to every member featurizer.
func NewCompositions(elements *tabular.Table, opts ...Option) (*Compositions, error) {
	avg, err := NewWeightedAverage(elements, opts...)
	if err != nil {
		return nil, err
	}
	sum, err := NewWeightedSum(elements, opts...)
	if err != nil {
		return nil, err
	}
	vr, err := NewWeightedVariance(elements, opts...)
	if err != nil {
		return nil, err
	}
	mx, err := NewMax(elements, opts...)
	if err != nil {
		return nil, err
	}
	mn, err := NewMin(elements, opts...)
	if err != nil {
		return nil, err
	}

	c := &Compositions{feats: []Featurizer{avg, sum, vr, mx, mn}}
	for _, f := range c.feats {
		c.labels = append(c.labels, f.Labels()...)
	}
	return c, nil
}

// Labels implements Featurizer.
func (c *Compositions) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Featurize implements Featurizer.
func (c *Compositions) Featurize(comp Composition) ([]float64, error) {
	out := make([]float64, 0, len(c.labels))
	for _, f := range c.feats {
		vec, err := f.Featurize(comp)
		if err != nil {
			return nil, err
		}
		out = append(out, vec...)
	}
	return out, nil
}

// Transform featurizes a batch of compositions into a feature table,
// rows indexed by position.
func (c *Compositions) Transform(comps ...Composition) (*tabular.Table, error) {
	t := tabular.New(c.labels...)
	for i, comp := range comps {
		vec, err := c.Featurize(comp)
		if err != nil {
			return nil, err
		}
		if err := t.AppendRow(strconv.Itoa(i), vec...); err != nil {
			return nil, err
		}
	}
	return t, nil
}
