package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"
	"pkt.systems/mathtok"
	"pkt.systems/version"
)

const stdinName = "-"

func init() {
	version.SetDefaultModule("pkt.systems/mathtok")
}

type options struct {
	mathDelimiters bool
	formatName     string
	outPath        string
	width          int
	jobs           int
	strict         bool
	nfc            bool
	quiet          bool
	logFormat      string
	stats          bool
	showVersion    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("mathtok", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVarP(&opts.mathDelimiters, "math-delimiters", "d", true, "Wrap each formula in [math] ... [end_math] followed by a blank line")
	flags.StringVarP(&opts.formatName, "format", "f", "auto", "Input format: auto|xml|html")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.IntVarP(&opts.width, "width", "w", 0, "Wrap output at this width (0 uses terminal width if available, negative disables)")
	flags.IntVarP(&opts.jobs, "jobs", "j", 4, "Maximum concurrent conversions")
	flags.BoolVar(&opts.strict, "strict", false, "Fail on elements outside the known vocabulary")
	flags.BoolVar(&opts.nfc, "nfc", false, "Normalize text to Unicode NFC")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress diagnostics")
	flags.StringVar(&opts.logFormat, "log-format", "logfmt", "Diagnostic log format: logfmt|json")
	flags.BoolVar(&opts.stats, "stats", false, "Log token and formula counts per input")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mathtok [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nInputs may be files, file:// or http(s):// URLs. If no input is provided, the document is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	logger, err := newLogger(stderr, opts.logFormat, opts.quiet)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --log-format %q: %v\n", opts.logFormat, err)
		return 2
	}
	format, err := mathtok.ParseFormat(opts.formatName)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --format: %v\n", err)
		return 2
	}

	inputs, err := makeInputs(flags.Args(), format, stdin)
	if err != nil {
		level.Error(logger).Log("msg", "open input", "err", err)
		return 1
	}

	convertOpts := []mathtok.ConvertOption{
		mathtok.WithMathDelimiters(opts.mathDelimiters),
		mathtok.WithStrictElements(opts.strict),
	}
	if opts.nfc {
		convertOpts = append(convertOpts, mathtok.WithNormalization(norm.NFC))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := mathtok.ConvertAll(ctx, inputs, opts.jobs, convertOpts...)
	if err != nil {
		level.Error(logger).Log("msg", "conversion failed", "err", err)
		return 1
	}

	writer, closeOut, err := resolveOutput(opts.outPath, stdout)
	if err != nil {
		level.Error(logger).Log("msg", "open output", "err", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	width := resolveWidth(opts.width, writer)
	for i, res := range results {
		name := inputs[i].Name()
		reportDiagnostics(logger, name, res, opts.stats)
		if err := writeTokens(writer, res.Tokens, width); err != nil {
			level.Error(logger).Log("msg", "write output", "input", name, "err", err)
			return 1
		}
	}
	return 0
}

func newLogger(w io.Writer, format string, quiet bool) (log.Logger, error) {
	var logger log.Logger
	sw := log.NewSyncWriter(w)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "logfmt":
		logger = log.NewLogfmtLogger(sw)
	case "json":
		logger = log.NewJSONLogger(sw)
	default:
		return nil, fmt.Errorf("expected logfmt|json")
	}
	if quiet {
		return level.NewFilter(logger, level.AllowError()), nil
	}
	return level.NewFilter(logger, level.AllowInfo()), nil
}

func reportDiagnostics(logger log.Logger, name string, res mathtok.Result, stats bool) {
	inputLogger := log.With(logger, "input", name)
	sink := mathtok.LogSink(inputLogger)
	for _, d := range res.Diagnostics {
		sink.Warn(d)
	}
	if stats {
		level.Info(inputLogger).Log(
			"msg", "converted",
			"tokens", len(mathtok.ParseTokens(res.Tokens)),
			"formulas", len(mathtok.SplitFormulas(res.Tokens)),
			"diagnostics", len(res.Diagnostics),
		)
	}
}

func writeTokens(w io.Writer, tokens string, width int) error {
	if tokens == "" {
		return nil
	}
	if width > 0 {
		tokens = wordwrap.String(tokens, width)
	}
	if !strings.HasSuffix(tokens, "\n") {
		tokens += "\n"
	}
	_, err := io.WriteString(w, tokens)
	return err
}

type fileInput struct {
	path   string
	format mathtok.Format
}

func (in fileInput) Name() string { return in.path }

func (in fileInput) Convert(ctx context.Context, opts ...mathtok.ConvertOption) (mathtok.Result, error) {
	if err := ctx.Err(); err != nil {
		return mathtok.Result{}, err
	}
	f, err := os.Open(in.path)
	if err != nil {
		return mathtok.Result{}, err
	}
	defer f.Close()
	return mathtok.Convert(mathtok.ConvertRequest{Reader: f, Format: in.format, Options: opts})
}

func makeInputs(args []string, format mathtok.Format, stdin io.Reader) ([]mathtok.Input, error) {
	if len(args) == 0 {
		return []mathtok.Input{mathtok.ReaderInput(stdinName, stdin, format)}, nil
	}
	inputs := make([]mathtok.Input, 0, len(args))
	for _, raw := range args {
		in, err := makeInput(raw, format, stdin)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func makeInput(raw string, format mathtok.Format, stdin io.Reader) (mathtok.Input, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty input argument")
	}
	if raw == stdinName {
		return mathtok.ReaderInput(stdinName, stdin, format), nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return mathtok.URLInput(raw, nil), nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return pathInput(path, format), nil
		}
	}
	return pathInput(raw, format), nil
}

func pathInput(path string, format mathtok.Format) mathtok.Input {
	clean := normalizePath(path)
	if format == mathtok.FormatAuto {
		return mathtok.FileInput(clean)
	}
	return fileInput{path: clean, format: format}
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

// resolveWidth returns 0 when output should not be wrapped.
func resolveWidth(width int, w io.Writer) int {
	if width != 0 {
		return max(width, 0)
	}
	if !isTerminal(w) {
		return 0
	}
	return terminalWidth(w.(*os.File), 0)
}

func terminalWidth(f *os.File, fallback int) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
