package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"histoterm/infra/errorx"
	"histoterm/infra/errorx/errCode"
	"histoterm/infra/observe/log/staticLog"
	"histoterm/render"
	"histoterm/stat/hist"
)

type Config struct {
	Bins     uint32            `yaml:"bins"`
	Width    uint32            `yaml:"width"`
	Variance string            `yaml:"variance"`  // sumsq / welford / gonum
	Format   string            `yaml:"format"`    // text / json / json-compact
	JSON     bool              `yaml:"json"`      // 输入为 JSON 文档
	JSONPath string            `yaml:"json_path"` // gjson path, 非空时隐含 json
	Log      staticLog.Options `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Bins:     hist.DEFAULT_BINS,
		Width:    hist.DEFAULT_WIDTH,
		Variance: hist.SUM_OF_SQUARES.String(),
		Format:   render.FORMAT_TEXT,
	}
}

// Load 在默认值之上读取 yaml, 文件中未出现的字段保持默认
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errorx.Wrap(errCode.IO_FAILURE, err, "read yaml")
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errorx.Wrap(errCode.INVALID_CONFIG, err, "unmarshal yaml")
	}

	// 规范化：小写、去空格
	c.Variance = strings.ToLower(strings.TrimSpace(c.Variance))
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	return c, nil
}

// Validate 汇总所有非法字段
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Bins == 0 {
		result = multierror.Append(result, fmt.Errorf("--bins must be > 0"))
	}
	if c.Bins > hist.MAX_BINS {
		result = multierror.Append(result, fmt.Errorf("--bins must be <= %d", hist.MAX_BINS))
	}
	if c.Width == 0 {
		result = multierror.Append(result, fmt.Errorf("--width must be > 0"))
	}
	if hist.GetVarianceMethod(c.Variance) == hist.VARIANCE_ERROR {
		result = multierror.Append(result, fmt.Errorf("unknown variance method %q", c.Variance))
	}
	switch c.Format {
	case "", render.FORMAT_TEXT, render.FORMAT_JSON, render.FORMAT_JSON_COMPACT:
	default:
		result = multierror.Append(result, fmt.Errorf("unknown output format %q", c.Format))
	}

	if err := result.ErrorOrNil(); err != nil {
		return errorx.Wrap(errCode.INVALID_CONFIG, err, "invalid configuration")
	}
	return nil
}

func (c *Config) Hist() hist.Config {
	return hist.Config{
		BinCount:     c.Bins,
		DisplayWidth: c.Width,
		Variance:     hist.GetVarianceMethod(c.Variance),
	}
}
