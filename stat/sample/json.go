package sample

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/tidwall/gjson"
)

// ParseJSON 从 JSON 文档中按 gjson path 取数值
// path 为空时取整个文档; 数组逐层展开, 数字字符串按文本 token 解析
func ParseJSON(doc []byte, path string) *Result {
	res := &Result{Samples: make([]float64, 0), Rejected: bitset.New(0)}
	if !gjson.ValidBytes(doc) {
		return res
	}

	var root gjson.Result
	if path == "" {
		root = gjson.ParseBytes(doc)
	} else {
		root = gjson.GetBytes(doc, path)
	}
	collect(root, res)
	return res
}

func collect(v gjson.Result, res *Result) {
	if v.IsArray() {
		v.ForEach(func(_, item gjson.Result) bool {
			collect(item, res)
			return true
		})
		return
	}
	if !v.Exists() {
		return
	}

	var (
		x  float64
		ok bool
	)
	switch v.Type {
	case gjson.Number:
		x, ok = parseToken(v.Raw)
	case gjson.String:
		x, ok = parseToken(v.Str)
	}
	if ok {
		res.Samples = append(res.Samples, x)
	} else {
		res.Rejected.Set(res.Tokens)
	}
	res.Tokens++
}
