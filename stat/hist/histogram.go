package hist

import (
	"fmt"
	"math"

	"histoterm/infra/errorx"
	"histoterm/infra/errorx/errCode"
)

type Config struct {
	BinCount     uint32
	DisplayWidth uint32
	Variance     VarianceMethod
}

func DefaultConfig() Config {
	return Config{BinCount: DEFAULT_BINS, DisplayWidth: DEFAULT_WIDTH, Variance: SUM_OF_SQUARES}
}

// Bin 除最后一个分箱外均为 [Lower, Upper), 最后一个为 [Lower, Max]
type Bin struct {
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	BarLength  int     `json:"bar_length"`
}

type Report struct {
	Statistics   Statistics `json:"statistics"`
	Bins         []Bin      `json:"bins"`
	Degenerate   bool       `json:"degenerate"`
	BinWidth     float64    `json:"bin_width"` // 退化时为 0
	DisplayWidth int        `json:"display_width"`
}

func (c Config) validate() error {
	if c.BinCount == 0 {
		return errorx.Wrap(errCode.INVALID_CONFIG, ErrInvalidConfig, "bin count must be > 0")
	}
	if c.BinCount > MAX_BINS {
		return errorx.Wrap(errCode.INVALID_CONFIG, ErrInvalidConfig, fmt.Sprintf("bin count must be <= %d", MAX_BINS))
	}
	if c.DisplayWidth == 0 {
		return errorx.Wrap(errCode.INVALID_CONFIG, ErrInvalidConfig, "display width must be > 0")
	}
	return nil
}

// BuildReport 统计 + 等宽分箱 + 柱长缩放
func BuildReport(samples []float64, cfg Config) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	st, err := ComputeStatistics(samples, cfg.Variance)
	if err != nil {
		return nil, err
	}

	width := int(cfg.DisplayWidth)

	// 所有值相同, 无法细分: 单个 [min, max] 分箱
	if st.Max-st.Min < machineEpsilon {
		return &Report{
			Statistics: st,
			Bins: []Bin{{
				Lower:      st.Min,
				Upper:      st.Max,
				Count:      st.Count,
				Percentage: 100,
				BarLength:  width,
			}},
			Degenerate:   true,
			DisplayWidth: width,
		}, nil
	}

	bins := int(cfg.BinCount)
	g := newGrid(st.Min, st.Max, bins)

	result := make([]Bin, bins)
	for i := 0; i < bins; i++ {
		result[i].Lower = g.edge(i)
		if i == bins-1 {
			result[i].Upper = st.Max
		} else {
			result[i].Upper = g.edge(i + 1)
		}
	}

	for _, v := range samples {
		result[g.index(v)].Count++
	}

	maxCount := 0
	for i := range result {
		if result[i].Count > maxCount {
			maxCount = result[i].Count
		}
	}
	if maxCount < 1 {
		maxCount = 1
	}

	for i := range result {
		result[i].Percentage = 100 * float64(result[i].Count) / float64(st.Count)
		result[i].BarLength = BarLength(result[i].Count, maxCount, width)
	}

	return &Report{
		Statistics:   st,
		Bins:         result,
		BinWidth:     g.width(),
		DisplayWidth: width,
	}, nil
}

// grid 等宽分箱的边界与下标计算
// max-min 超出 float64 范围时, 在 1/2 尺度上计算, 避免 +Inf
type grid struct {
	minV   float64
	step   float64 // halved 时为实际宽度的一半
	bins   int
	halved bool
}

func newGrid(minV, maxV float64, bins int) grid {
	g := grid{minV: minV, bins: bins}
	span := maxV - minV
	if math.IsInf(span, 0) {
		g.halved = true
		span = maxV/2 - minV/2
	}
	g.step = span / float64(bins)
	if !(g.step > 0) || math.IsInf(g.step, 0) {
		panic(fmt.Sprintf("hist: bin width %v for non-degenerate range [%v, %v] over %d bins", g.step, minV, maxV, bins))
	}
	return g
}

func (g grid) edge(i int) float64 {
	if g.halved {
		off := float64(i) * g.step
		return g.minV + off + off
	}
	return g.minV + float64(i)*g.step
}

// width 实际分箱宽度, 超出 float64 范围时取 MaxFloat64
func (g grid) width() float64 {
	if !g.halved {
		return g.step
	}
	if w := 2 * g.step; !math.IsInf(w, 0) {
		return w
	}
	return math.MaxFloat64
}

// index floor((v-min)/w), 超出 bins-1 的 (v == max 或浮点误差) 归入最后一个分箱
func (g grid) index(v float64) int {
	var f float64
	if g.halved {
		f = math.Floor((v/2 - g.minV/2) / g.step)
	} else {
		f = math.Floor((v - g.minV) / g.step)
	}
	if f >= float64(g.bins) {
		return g.bins - 1
	}
	return int(f)
}

// BarLength floor(count*width/maxCount), maxCount 至少为 1
func BarLength(count, maxCount, width int) int {
	if maxCount < 1 {
		maxCount = 1
	}
	return int(uint64(count) * uint64(width) / uint64(maxCount))
}
