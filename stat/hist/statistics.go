package hist

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"histoterm/infra/errorx"
	"histoterm/infra/errorx/errCode"
)

var (
	ErrEmptyInput    = errorx.New(errCode.EMPTY_INPUT, "no numeric samples")
	ErrInvalidConfig = errorx.New(errCode.INVALID_CONFIG, "invalid histogram configuration")
)

type Statistics struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // 总体标准差
}

// ComputeStatistics 一次线性扫描得到 count/min/max/mean/std
func ComputeStatistics(samples []float64, method VarianceMethod) (Statistics, error) {
	n := len(samples)
	if n == 0 {
		return Statistics{}, ErrEmptyInput
	}

	minV, maxV := math.Inf(1), math.Inf(-1)
	var (
		sum, sumSq float64 // SUM_OF_SQUARES
		mean, m2   float64 // WELFORD
	)
	for i, x := range samples {
		if x < minV {
			minV = x
		}
		if x > maxV {
			maxV = x
		}
		switch method {
		case SUM_OF_SQUARES:
			sum += x
			sumSq += x * x
		case WELFORD:
			delta := x - mean
			mean += delta / float64(i+1)
			m2 += delta * (x - mean)
		}
	}

	var variance float64
	switch method {
	case SUM_OF_SQUARES:
		mean = sum / float64(n)
		variance = sumSq/float64(n) - mean*mean
	case WELFORD:
		variance = m2 / float64(n)
	case GONUM:
		mean, variance = stat.PopMeanVariance(samples, nil)
	default:
		return Statistics{}, errorx.Wrap(errCode.INVALID_CONFIG, ErrInvalidConfig, "unknown variance method "+method.String())
	}

	// 浮点抵消可能得到很小的负方差, 按 0 处理
	std := 0.0
	if variance > 0 {
		std = math.Sqrt(variance)
	}

	return Statistics{Count: n, Min: minV, Max: maxV, Mean: mean, StdDev: std}, nil
}
