// Package sample 把原始文本转换成有限浮点样本序列
//
// 无法解析的 token 以及 NaN / ±Inf 被静默丢弃, 不视为错误;
// 结果为空由调用方判断.
package sample

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"

	"histoterm/infra/errorx"
	"histoterm/infra/errorx/errCode"
)

// 单个 token 最大长度
const maxTokenSize = 1 << 20

type Result struct {
	Samples  []float64
	Tokens   uint           // 读到的 token 总数
	Rejected *bitset.BitSet // 被丢弃的 token 下标
}

// Dropped 被丢弃的 token 数
func (r *Result) Dropped() uint {
	return r.Rejected.Count()
}

// Parse 按空白切分 text, 保留输入顺序
func Parse(text string) []float64 {
	fields := strings.Fields(text)
	out := make([]float64, 0, len(fields))
	for _, tok := range fields {
		if x, ok := parseToken(tok); ok {
			out = append(out, x)
		}
	}
	return out
}

// Scan 流式读取 r, 同时记录被丢弃的 token
func Scan(r io.Reader) (*Result, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	sc.Split(scanWordsDropOversized())

	res := &Result{Samples: make([]float64, 0), Rejected: bitset.New(0)}
	for sc.Scan() {
		if x, ok := parseToken(sc.Text()); ok {
			res.Samples = append(res.Samples, x)
		} else {
			res.Rejected.Set(res.Tokens)
		}
		res.Tokens++
	}
	if err := sc.Err(); err != nil {
		return nil, errorx.Wrap(errCode.IO_FAILURE, err, "read input")
	}
	return res, nil
}

// scanWordsDropOversized 同 bufio.ScanWords, 但超过 maxTokenSize 的 token
// 以空 token 返回一次 (解析失败, 计入 Rejected), 其余部分跳过直到下一个空白
func scanWordsDropOversized() bufio.SplitFunc {
	skipping := false
	return func(data []byte, atEOF bool) (int, []byte, error) {
		skipped := 0
		if skipping {
			i := indexSpace(data)
			switch {
			case i >= 0:
				skipping = false
				skipped, data = i, data[i:]
			case atEOF:
				return len(data), nil, nil
			default:
				// 保留可能被截断的多字节空白
				if n := len(data) - (utf8.UTFMax - 1); n > 0 {
					return n, nil, nil
				}
				return 0, nil, nil
			}
		}

		advance, token, err := bufio.ScanWords(data, atEOF)
		if err == nil && token == nil && !atEOF && len(data)-advance >= maxTokenSize {
			skipping = true
			return skipped + len(data), []byte{}, nil
		}
		return skipped + advance, token, err
	}
}

func indexSpace(data []byte) int {
	for i := 0; i < len(data); {
		r, width := utf8.DecodeRune(data[i:])
		if unicode.IsSpace(r) {
			return i
		}
		i += width
	}
	return -1
}

func parseToken(tok string) (float64, bool) {
	x, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return x, isFinite(x)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
