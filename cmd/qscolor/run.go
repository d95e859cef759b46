package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lvlgraph/qscolor/csr"
	"github.com/lvlgraph/qscolor/qscolor"
)

var (
	flagInput       string
	flagOutput      string
	flagConfig      string
	flagNodes       int
	flagColors      int
	flagTolerance   float64
	flagUnitWeights bool
	flagWorkers     int
	flagVerbose     bool

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Refine an edge-list graph into quasi-stable colors",
		Long: `Reads a whitespace-separated edge list ("src dst [weight]" per line,
'#' starts a comment, weight defaults to 1), refines it, and reports the
resulting color classes and the achieved q-error.`,
		RunE: runRefinement,
	}
)

func init() {
	runCmd.Flags().StringVarP(&flagInput, "input", "i", "", "edge-list file to refine")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write 'node color' assignment lines to this file")
	runCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config supplying defaults for these flags")
	runCmd.Flags().IntVar(&flagNodes, "nodes", 0, "node count (default: max index + 1)")
	runCmd.Flags().IntVarP(&flagColors, "colors", "c", 0, "cap on the number of colors (0 = unbounded)")
	runCmd.Flags().Float64VarP(&flagTolerance, "tolerance", "q", 0, "stop once both directions' worst spread is ≤ this")
	runCmd.Flags().BoolVar(&flagUnitWeights, "unit-weights", false, "treat every edge as weight 1")
	runCmd.Flags().IntVar(&flagWorkers, "workers", 0, "reduction parallelism (0 = GOMAXPROCS)")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log refinement progress")

	rootCmd.AddCommand(runCmd)
}

func runRefinement(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	mergeFlags(cmd, &cfg)
	if cfg.Input == "" {
		return fmt.Errorf("no input file: pass --input or set 'input' in --config")
	}

	logger := newLogger(flagVerbose)

	start := time.Now()
	w, err := loadEdgeList(cfg.Input, cfg.Nodes)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("nodes", w.Dims()).
		Int("edges", w.NNZ()).
		Dur("load_time", time.Since(start)).
		Msg("graph loaded")

	opts := []qscolor.Option{
		qscolor.WithMaxColors(cfg.Colors),
		qscolor.WithTolerance(cfg.Tolerance),
		qscolor.WithWorkers(cfg.Workers),
		qscolor.WithLogger(logger),
	}
	if cfg.UnitWeights {
		opts = append(opts, qscolor.WithUnitWeights())
	}

	refineStart := time.Now()
	res, err := qscolor.Refine(w, opts...)
	if err != nil {
		return err
	}

	logger.Info().
		Int("colors", res.Partition.Len()).
		Float64("q_error", res.QError).
		Int("splits", res.Splits).
		Dur("refine_time", time.Since(refineStart)).
		Msg("refinement finished")

	if cfg.Output != "" {
		if err = writeAssignment(cfg.Output, res.Assignment()); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.Output).Msg("assignment written")
	}

	return nil
}

// mergeFlags overlays explicitly set flags onto the config file values.
func mergeFlags(cmd *cobra.Command, cfg *Config) {
	if cmd.Flags().Changed("input") || cfg.Input == "" {
		cfg.Input = flagInput
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = flagOutput
	}
	if cmd.Flags().Changed("nodes") {
		cfg.Nodes = flagNodes
	}
	if cmd.Flags().Changed("colors") {
		cfg.Colors = flagColors
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = flagTolerance
	}
	if cmd.Flags().Changed("unit-weights") {
		cfg.UnitWeights = flagUnitWeights
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
}

// newLogger builds the console logger; --verbose enables progress events.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}

// loadEdgeList parses "src dst [weight]" lines into a csr.Matrix.
// Blank lines and '#' comments are skipped; nodes=0 infers the node count as
// the largest mentioned index plus one.
func loadEdgeList(path string, nodes int) (*csr.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list: %w", err)
	}
	defer f.Close()

	var edges []csr.Edge
	maxIdx := -1
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 && len(fields) != 3 {
			return nil, fmt.Errorf("%s:%d: want 'src dst [weight]', got %q", path, lineNo, line)
		}

		src, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad src %q: %w", path, lineNo, fields[0], err)
		}
		dst, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad dst %q: %w", path, lineNo, fields[1], err)
		}
		weight := 1.0
		if len(fields) == 3 {
			if weight, err = strconv.ParseFloat(fields[2], 64); err != nil {
				return nil, fmt.Errorf("%s:%d: bad weight %q: %w", path, lineNo, fields[2], err)
			}
		}

		edges = append(edges, csr.Edge{Src: src, Dst: dst, Weight: weight})
		if src > maxIdx {
			maxIdx = src
		}
		if dst > maxIdx {
			maxIdx = dst
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}

	if nodes == 0 {
		nodes = maxIdx + 1
	}

	return csr.New(nodes, edges)
}

// writeAssignment emits one "node color" line per node.
func writeAssignment(path string, assignment []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for node, color := range assignment {
		fmt.Fprintf(w, "%d %d\n", node, color)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
