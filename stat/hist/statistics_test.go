package hist

import (
	"errors"
	"math"
	"testing"

	oldstat "github.com/gonum/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestComputeStatistics(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	for _, m := range []VarianceMethod{SUM_OF_SQUARES, WELFORD, GONUM} {
		t.Run(m.String(), func(t *testing.T) {
			st, err := ComputeStatistics(data, m)
			require.NoError(t, err)

			assert.Equal(t, 8, st.Count)
			assert.Equal(t, 2.0, st.Min)
			assert.Equal(t, 9.0, st.Max)
			assert.InDelta(t, 5.0, st.Mean, 1e-12)
			assert.InDelta(t, 2.0, st.StdDev, 1e-12)
			assert.True(t, scalar.EqualWithinAbs(st.Mean, oldstat.Mean(data, nil), 1e-12))
		})
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	_, err := ComputeStatistics(nil, SUM_OF_SQUARES)
	assert.True(t, errors.Is(err, ErrEmptyInput))
	assert.Same(t, ErrEmptyInput, err)

	_, err = ComputeStatistics([]float64{}, WELFORD)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestComputeStatisticsClampsNegativeVariance(t *testing.T) {
	// 大量级低方差数据, E[x²]-mean² 可能因抵消为负
	data := []float64{1e9 + 0.1, 1e9 + 0.1, 1e9 + 0.1}
	st, err := ComputeStatistics(data, SUM_OF_SQUARES)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, st.StdDev, 0.0)
	assert.False(t, math.IsNaN(st.StdDev))
}

func TestVarianceMethodsAgree(t *testing.T) {
	data := []float64{-1.5, 3.25, 8, 0, 12.5, -7, 4.75}
	ref, err := ComputeStatistics(data, GONUM)
	require.NoError(t, err)
	for _, m := range []VarianceMethod{SUM_OF_SQUARES, WELFORD} {
		st, err := ComputeStatistics(data, m)
		require.NoError(t, err)
		assert.InDelta(t, ref.Mean, st.Mean, 1e-12)
		assert.InDelta(t, ref.StdDev, st.StdDev, 1e-12)
		assert.Equal(t, ref.Min, st.Min)
		assert.Equal(t, ref.Max, st.Max)
	}
}

func TestGetVarianceMethod(t *testing.T) {
	assert.Equal(t, SUM_OF_SQUARES, GetVarianceMethod(""))
	assert.Equal(t, SUM_OF_SQUARES, GetVarianceMethod("sumsq"))
	assert.Equal(t, WELFORD, GetVarianceMethod("welford"))
	assert.Equal(t, GONUM, GetVarianceMethod("gonum"))
	assert.Equal(t, VARIANCE_ERROR, GetVarianceMethod("two-pass"))
	assert.Equal(t, "ERROR", VARIANCE_ERROR.String())
}
