package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sirkon/pystrict/internal/pysyntax"
	"github.com/sirkon/pystrict/internal/scan"
)

const version = "0.2.0"

const doc = `pystrict checks multi-line bracketed constructs in Python source:
first elements sharing a line with their opening bracket (S100) and
missing trailing commas before a closing bracket (S101).`

// errViolationsFound distinguishes "the inputs are bad" (exit 1) from
// operational failures (exit 2).
var errViolationsFound = errors.New("violations found")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, errViolationsFound) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "pystrict:", err)
		os.Exit(2)
	}
}

type options struct {
	configPath string
	noColor    bool
	verbose    bool
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "pystrict [flags] <file>...",
		Short:         "Style checker for multi-line bracketed constructs in Python source",
		Long:          doc,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), &opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a configuration file (default .pystrict.yaml if present)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(stdout, stderr io.Writer, opts *options, args []string) error {
	logger := log.New(stderr)
	logger.SetPrefix("pystrict")
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupColor(cfg, opts)

	var files []string
	for _, arg := range args {
		skip, err := cfg.excluded(arg)
		if err != nil {
			return fmt.Errorf("match exclude patterns against %q: %w", arg, err)
		}
		if skip {
			logger.Debug("excluded by config", "file", arg)
			continue
		}
		files = append(files, arg)
	}
	if len(files) == 0 {
		logger.Debug("nothing to check")
		return nil
	}

	reporter := checkFiles(files, logger)

	hadViolations := false
	hadFailures := false
	for _, res := range reporter.Sorted() {
		if res.Err != nil {
			hadFailures = true
			fmt.Fprintf(stderr, "%s: %s\n", res.File, res.Err)
			continue
		}
		for _, v := range res.Violations {
			renderViolation(stdout, res.File, v)
		}
		if len(res.Violations) > 0 {
			hadViolations = true
		}
	}

	if hadFailures {
		return errors.New("some inputs could not be checked")
	}
	if hadViolations {
		return errViolationsFound
	}

	return nil
}

// checkFiles scans the inputs concurrently. Each scan only reads its own
// tree, so the reporter is the single coordination point.
func checkFiles(files []string, logger *log.Logger) *scan.Reporter {
	provider := pysyntax.NewParser()

	var reporter scan.Reporter

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(runtime.GOMAXPROCS(0), len(files)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reporter.Report(checkFile(provider, i, files[i], logger))
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return &reporter
}

// checkFile runs the read → parse → scan pipeline for one input.
// "-" reads standard input and is rendered as "stdin".
func checkFile(provider *pysyntax.Parser, index int, name string, logger *log.Logger) scan.FileResult {
	res := scan.FileResult{Index: index, File: name}

	var (
		source []byte
		err    error
	)
	if name == "-" {
		res.File = "stdin"
		source, err = io.ReadAll(os.Stdin)
	} else {
		source, err = os.ReadFile(name)
	}
	if err != nil {
		res.Err = fmt.Errorf("read: %w", err)
		return res
	}

	tree, err := provider.Parse(string(source))
	if err != nil {
		res.Err = fmt.Errorf("unparsable input: %w", err)
		return res
	}

	violations, err := scan.Scan(tree)
	if err != nil {
		res.Err = fmt.Errorf("scan: %w", err)
		return res
	}

	logger.Debug("checked", "file", res.File, "violations", len(violations))
	res.Violations = violations

	return res
}

func setupColor(cfg *Config, opts *options) {
	switch {
	case opts.noColor || cfg.Color == colorModeNever:
		color.NoColor = true
	case cfg.Color == colorModeAlways:
		color.NoColor = false
	default:
		// colorModeAuto: fatih/color detects the terminal itself
	}
}
