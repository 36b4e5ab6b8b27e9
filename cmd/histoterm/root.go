package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"histoterm/config"
	"histoterm/infra/errorx"
	"histoterm/infra/errorx/errCode"
	"histoterm/infra/observe/log/staticLog"
	"histoterm/render"
	"histoterm/stat/hist"
	"histoterm/stat/sample"
)

type flags struct {
	cfgFile  string
	bins     uint32
	width    uint32
	variance string
	format   string
	json     bool
	jsonPath string
	logLevel string
	logFile  string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "histoterm [--bins N] [--width W] [file ...]",
		Short: "Print an ASCII histogram of numbers read from stdin",
		Long: `Reads whitespace-separated numbers from stdin (or the given files) and prints an ASCII histogram.
Tokens that are not finite numbers are ignored.`,
		Example:       "  cat data.txt | histoterm --bins 20 --width 60",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			closer, err := staticLog.Init(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return errorx.Wrap(errCode.INVALID_CONFIG, err, "log level")
			}
			defer closer.Close()

			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	// usage 输出到 stderr, stdout 只留给报告
	help := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		c.SetOut(c.ErrOrStderr())
		help(c, args)
	})

	fl := cmd.Flags()
	fl.StringVar(&f.cfgFile, "config", "", "YAML config file")
	fl.Uint32Var(&f.bins, "bins", hist.DEFAULT_BINS, "Number of bins")
	fl.Uint32Var(&f.width, "width", hist.DEFAULT_WIDTH, "Width of the longest bar")
	fl.StringVar(&f.variance, "variance", hist.SUM_OF_SQUARES.String(), "Variance method: sumsq, welford or gonum")
	fl.StringVar(&f.format, "format", render.FORMAT_TEXT, "Output format: text, json or json-compact")
	fl.BoolVar(&f.json, "json", false, "Treat input as a JSON document")
	fl.StringVar(&f.jsonPath, "json-path", "", "gjson path selecting the numbers in a JSON document (implies --json)")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level (default warn)")
	fl.StringVar(&f.logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
	return cmd
}

// resolve 默认值 < yaml < 显式设置的 flag
func (f *flags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.cfgFile != "" {
		var err error
		if cfg, err = config.Load(f.cfgFile); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("bins") {
		cfg.Bins = f.bins
	}
	if changed("width") {
		cfg.Width = f.width
	}
	if changed("variance") {
		cfg.Variance = f.variance
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("json") {
		cfg.JSON = f.json
	}
	if changed("json-path") {
		cfg.JSONPath = f.jsonPath
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-file") {
		cfg.Log.File = f.logFile
	}
	return cfg, nil
}

func run(cfg *config.Config, files []string, stdin io.Reader, stdout io.Writer) error {
	source := "stdin"
	in := stdin
	if len(files) > 0 {
		source = "input"
		readers := make([]io.Reader, 0, 2*len(files))
		for _, name := range files {
			b, err := os.ReadFile(name)
			if err != nil {
				return errorx.Wrap(errCode.IO_FAILURE, err, "read "+name)
			}
			readers = append(readers, bytes.NewReader(b), bytes.NewReader([]byte{'\n'}))
		}
		in = io.MultiReader(readers...)
	}

	var res *sample.Result
	if cfg.JSON || cfg.JSONPath != "" {
		doc, err := io.ReadAll(in)
		if err != nil {
			return errorx.Wrap(errCode.IO_FAILURE, err, "read "+source)
		}
		res = sample.ParseJSON(doc, cfg.JSONPath)
	} else {
		var err error
		if res, err = sample.Scan(in); err != nil {
			return err
		}
	}
	staticLog.Log.Debugf("read %d tokens from %s, %d samples, %d dropped", res.Tokens, source, len(res.Samples), res.Dropped())

	report, err := hist.BuildReport(res.Samples, cfg.Hist())
	if err != nil {
		if errors.Is(err, hist.ErrEmptyInput) {
			return errorx.Wrap(errCode.EMPTY_INPUT, err, fmt.Sprintf("No numeric data found on %s.", source))
		}
		return err
	}
	staticLog.Log.Infof("histogram: %d samples, %d bins, degenerate=%v", report.Statistics.Count, len(report.Bins), report.Degenerate)

	return render.Write(stdout, report, cfg.Format)
}

// execute 返回进程退出码
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		staticLog.Log.Debugf("%+v", err)
		reportError(stderr, err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error) {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			fmt.Fprintln(w, e)
		}
		return
	}

	var e *errorx.Error
	if errors.As(err, &e) && e.Code == errCode.EMPTY_INPUT {
		fmt.Fprintln(w, e.Msg)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
