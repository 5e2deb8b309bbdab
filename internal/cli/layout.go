package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandutsar/bqplot/pkg/config"
	"github.com/sandutsar/bqplot/pkg/export"
	"github.com/sandutsar/bqplot/pkg/pipeline"
)

// layoutFlags holds the flags of the layout command.
type layoutFlags struct {
	cache  cacheFlags
	output string
	format string
	jobs   int
}

// layoutCommand creates the layout command for computing chart snapshots.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags layoutFlags
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [chart.toml...]",
		Short: "Compute layout snapshots for chart documents",
		Long: `Compute layout snapshots for chart documents.

Each chart is built (scales, bars marks, figure), laid out for its container
and captured as a snapshot holding every scale's domain and range and every
bar segment's edges, color and opacity.

Output is written next to each input as <input>.layout.<ext> unless -o is
given. Use -o - to write a single chart to stdout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args, flags, opts)
		},
	}

	flags.cache.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single input only, - for stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: json (default), bson, msgpack")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 4, "charts laid out in parallel")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "override container width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "override container height")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached snapshots")

	return cmd
}

// runLayout loads the charts, computes their snapshots, and writes output.
func (c *CLI) runLayout(ctx context.Context, inputs []string, flags layoutFlags, opts pipeline.Options) error {
	if flags.output != "" && len(inputs) > 1 {
		return fmt.Errorf("--output needs exactly one input, got %d", len(inputs))
	}
	opts.Format = export.Format(flags.format)
	if opts.Format == "" && flags.output != "" && flags.output != "-" {
		opts.Format = export.FormatFromPath(flags.output)
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}

	charts := make([]*config.Chart, len(inputs))
	for i, path := range inputs {
		ch, err := config.Load(path)
		if err != nil {
			return err
		}
		if ch.Name == "" {
			ch.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		charts[i] = ch
	}

	runner, err := c.newRunner(ctx, flags.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, os.Stderr, "Laying out charts", len(charts))
	opts.Progress = spin.Advance
	spin.Start()

	results, err := runner.ExecuteBatch(ctx, charts, opts, flags.jobs)
	if err != nil {
		spin.StopWithError("Layout failed after %d of %d chart(s)", spin.Done(), len(charts))
		return err
	}
	if ctx.Err() != nil {
		spin.Stop()
		return ctx.Err()
	}

	if flags.output == "-" {
		spin.Stop()
		_, err := os.Stdout.Write(withNewline(results[0].Artifact, opts.Format))
		return err
	}

	spin.StopWithSuccess("Laid out %d chart(s)", spin.Done())
	for i, res := range results {
		out := flags.output
		if out == "" {
			out = outputPath(inputs[i], opts.Format)
		}
		if err := os.WriteFile(out, withNewline(res.Artifact, opts.Format), 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", out, err)
		}
		printResult(out, res)
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(results)))

	if len(results) == 1 && opts.Format == export.FormatJSON {
		printNewline()
		printNextStep("Inspect", appName+" inspect "+inputs[0])
	}
	return nil
}

// outputPath derives "<input>.layout.<ext>" for input.
func outputPath(input string, f export.Format) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".layout" + formatExt(f)
}

func formatExt(f export.Format) string {
	switch f {
	case export.FormatBSON:
		return ".bson"
	case export.FormatMsgpack:
		return ".mpk"
	}
	return ".json"
}

// withNewline terminates JSON output with a newline.
func withNewline(data []byte, f export.Format) []byte {
	if f != export.FormatJSON {
		return data
	}
	return append(data[:len(data):len(data)], '\n')
}
