// Copyright © 2019 Shunsuke Tonogai

package featurizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

func elementsTable(t *testing.T) *tabular.Table {
	t.Helper()
	tbl := tabular.New("p", "q")
	require.NoError(t, tbl.AppendRow("Fe", 2, 4))
	require.NoError(t, tbl.AppendRow("O", 1, 2))
	require.NoError(t, tbl.AppendRow("H", 8, math.NaN()))
	return tbl
}

// Fe2O3: amounts Fe=2, O=3; fractions 0.4 and 0.6
var fe2o3 = Composition{"Fe": 2, "O": 3}

func TestWeightedAverage(t *testing.T) {
	f, err := NewWeightedAverage(elementsTable(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"ave:p", "ave:q"}, f.Labels())

	vec, err := f.Featurize(fe2o3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.4, 2.8}, vec, 1e-12)
}

func TestWeightedSum(t *testing.T) {
	f, err := NewWeightedSum(elementsTable(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"sum:p", "sum:q"}, f.Labels())

	vec, err := f.Featurize(fe2o3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{7, 14}, vec, 1e-12)
}

func TestWeightedVariance(t *testing.T) {
	f, err := NewWeightedVariance(elementsTable(t))
	require.NoError(t, err)

	vec, err := f.Featurize(fe2o3)
	require.NoError(t, err)
	// var(p) = 0.4*(2-1.4)^2 + 0.6*(1-1.4)^2 = 0.24
	assert.InDeltaSlice(t, []float64{0.24, 0.96}, vec, 1e-12)
}

func TestMaxMin(t *testing.T) {
	mx, err := NewMax(elementsTable(t))
	require.NoError(t, err)
	vec, err := mx.Featurize(fe2o3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, vec)

	mn, err := NewMin(elementsTable(t))
	require.NoError(t, err)
	vec, err = mn.Featurize(fe2o3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vec)
}

func TestNaNPropagates(t *testing.T) {
	f, err := NewWeightedAverage(elementsTable(t))
	require.NoError(t, err)

	vec, err := f.Featurize(Composition{"H": 2, "O": 1})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(vec[0]))
	assert.True(t, math.IsNaN(vec[1]), "missing property must not silently become zero")

	mx, err := NewMax(elementsTable(t))
	require.NoError(t, err)
	vec, err = mx.Featurize(Composition{"H": 2, "O": 1})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(vec[1]))
}

func TestIncludeExcludeExclusive(t *testing.T) {
	_, err := NewWeightedAverage(elementsTable(t), Include("p"), Exclude("q"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExclusive))
}

func TestIncludeNarrowsColumns(t *testing.T) {
	f, err := NewWeightedSum(elementsTable(t), Include("q"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sum:q"}, f.Labels())

	vec, err := f.Featurize(fe2o3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{14}, vec, 1e-12)

	g, err := NewWeightedSum(elementsTable(t), Exclude("q"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sum:p"}, g.Labels())
}

func TestUnknownElement(t *testing.T) {
	f, err := NewWeightedAverage(elementsTable(t))
	require.NoError(t, err)

	_, err = f.Featurize(Composition{"Xx": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownElement))
}

func TestCompositionsTransform(t *testing.T) {
	c, err := NewCompositions(elementsTable(t))
	require.NoError(t, err)
	require.Len(t, c.Labels(), 10)
	assert.Equal(t, "ave:p", c.Labels()[0])
	assert.Equal(t, "min:q", c.Labels()[9])

	out, err := c.Transform(fe2o3, Composition{"Fe": 1, "O": 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Rows())
	assert.Equal(t, 10, out.Cols())
	assert.Equal(t, []string{"0", "1"}, out.Index())
}

func TestCompositionsExclusiveConfig(t *testing.T) {
	_, err := NewCompositions(elementsTable(t), Include("p"), Exclude("q"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExclusive))
}

func TestParseComposition(t *testing.T) {
	comp, err := ParseComposition("Fe:2, O:3")
	require.NoError(t, err)
	assert.Equal(t, Composition{"Fe": 2, "O": 3}, comp)

	_, err = ParseComposition("Fe2O3")
	require.Error(t, err)

	_, err = ParseComposition("Fe:x")
	require.Error(t, err)

	_, err = ParseComposition("")
	require.Error(t, err)
}
