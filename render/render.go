// Package render 把 hist.Report 格式化输出, 支持文本柱状图与 JSON
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/pretty"

	"histoterm/infra/errorx"
	"histoterm/infra/errorx/errCode"
	"histoterm/stat/hist"
)

const (
	FORMAT_TEXT         = "text"
	FORMAT_JSON         = "json"
	FORMAT_JSON_COMPACT = "json-compact"
)

const barChar = "#"

func Write(w io.Writer, r *hist.Report, format string) error {
	switch format {
	case "", FORMAT_TEXT:
		return Text(w, r)
	case FORMAT_JSON:
		return JSON(w, r, true)
	case FORMAT_JSON_COMPACT:
		return JSON(w, r, false)
	default:
		return errorx.New(errCode.INVALID_CONFIG, fmt.Sprintf("unknown output format %q", format))
	}
}

// Text 退化区间输出一行摘要加满宽柱, 否则逐个分箱输出
func Text(w io.Writer, r *hist.Report) error {
	var sb strings.Builder
	st := r.Statistics

	if r.Degenerate {
		fmt.Fprintf(&sb, "All values are the same: %.6f\n", st.Min)
		fmt.Fprintf(&sb, "count = %d, min = max = %.6f, mean = %.6f, std = %.6f\n", st.Count, st.Min, st.Mean, st.StdDev)
		fmt.Fprintf(&sb, "\n[%s] %d\n", strings.Repeat(barChar, r.Bins[0].BarLength), st.Count)
		return writeString(w, sb.String())
	}

	fmt.Fprintf(&sb, "ASCII Histogram  (bins=%d, width=%d)\n", len(r.Bins), r.DisplayWidth)
	fmt.Fprintf(&sb, "count = %d, min = %.6f, max = %.6f, mean = %.6f, std = %.6f\n\n", st.Count, st.Min, st.Max, st.Mean, st.StdDev)
	for _, b := range r.Bins {
		fmt.Fprintf(&sb, "[%-10.4f , %10.4f) | %6d (%5s%%) | %s\n",
			b.Lower, b.Upper, b.Count, Percent(b.Percentage), strings.Repeat(barChar, b.BarLength))
	}
	return writeString(w, sb.String())
}

// Percent 保留一位小数; 按 float64 的精确值做银行家舍入, 与 %.1f 一致
func Percent(p float64) string {
	return exactDecimal(p).RoundBank(1).StringFixed(1)
}

// exactDecimal float64 的精确十进制值: mant * 2^exp = mant * 5^-exp / 10^-exp
func exactDecimal(p float64) decimal.Decimal {
	frac, exp := math.Frexp(p)
	mant := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	pow := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(pow.Mul(pow, mant), int32(exp))
}

func JSON(w io.Writer, r *hist.Report, indent bool) error {
	b, err := json.Marshal(r)
	if err != nil {
		return errorx.Wrap(errCode.INVALID_VALUE, err, "marshal report")
	}
	if indent {
		b = pretty.Pretty(b)
	} else {
		b = append(pretty.Ugly(b), '\n')
	}
	if _, err := w.Write(b); err != nil {
		return errorx.Wrap(errCode.IO_FAILURE, err, "write report")
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return errorx.Wrap(errCode.IO_FAILURE, err, "write report")
	}
	return nil
}
