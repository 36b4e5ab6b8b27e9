package hist

import "math"

// 机器精度, max-min 小于该值视为退化区间
var machineEpsilon = math.Nextafter(1, 2) - 1

const (
	DEFAULT_BINS  = 10
	DEFAULT_WIDTH = 50
	MAX_BINS      = 1 << 20 // 分箱数上限, 防止超大分配
)

// 方差计算方法, 三者都输出总体标准差
type VarianceMethod int

const (
	SUM_OF_SQUARES VarianceMethod = iota // "sumsq"  var = E[x²] - mean²
	WELFORD                              // "welford"
	GONUM                                // "gonum"  stat.PopMeanVariance
	VARIANCE_ERROR                       // "ERROR"
)

func (s VarianceMethod) String() string {
	switch s {
	case SUM_OF_SQUARES:
		return "sumsq"
	case WELFORD:
		return "welford"
	case GONUM:
		return "gonum"
	default:
		return "ERROR"
	}
}

func GetVarianceMethod(s string) VarianceMethod {
	switch s {
	case "", "sumsq":
		return SUM_OF_SQUARES
	case "welford":
		return WELFORD
	case "gonum":
		return GONUM
	default:
		return VARIANCE_ERROR
	}
}
