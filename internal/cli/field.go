package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/postscape/postscape/pkg/field"
	"github.com/postscape/postscape/pkg/pipeline"
	"github.com/postscape/postscape/pkg/postio"
	"github.com/postscape/postscape/pkg/space"
)

// fieldCommand creates the field command for density field inspection.
func (c *CLI) fieldCommand() *cobra.Command {
	var (
		output       string
		samples      int
		sampleOutput string
		noCache      bool
	)
	var flagOpts pipeline.Options

	cmd := &cobra.Command{
		Use:   "field [nodes.json]",
		Short: "Generate and summarize a density field over the anchors",
		Long: `Generate and summarize a density field over the anchors.

The field command normalizes the nodes into a cube, evaluates a density
value for every voxel of a regular grid (denser near nodes, falling off
with distance), and prints summary statistics. The raw field can be
written with -o, and --samples draws points from the field by importance
sampling for a quick density-weighted point cloud.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			applyFlagOverrides(cmd, &opts, flagOpts)
			return c.runField(cmd.Context(), args[0], opts, output, samples, sampleOutput, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the raw field as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flagOpts.Refresh, "refresh", false, "recompute even if a cached result exists")

	// Field flags
	cmd.Flags().Float64Var(&flagOpts.SpaceScale, "scale", pipeline.DefaultSpaceScale, "edge length of the cube nodes are normalized into")
	cmd.Flags().Float64Var(&flagOpts.Falloff, "falloff", pipeline.DefaultFalloff, "density falloff exponent")
	cmd.Flags().IntVar(&flagOpts.Resolution, "resolution", pipeline.DefaultResolution, "grid resolution per axis")
	cmd.Flags().Uint64Var(&flagOpts.Seed, "seed", pipeline.DefaultSeed, "random seed for sampling")
	cmd.Flags().IntVar(&samples, "samples", 0, "draw N density-weighted sample points")
	cmd.Flags().StringVar(&sampleOutput, "sample-output", "", "write sampled points as JSON (requires --samples)")

	return cmd
}

// runField loads the nodes, generates the field, and reports statistics.
func (c *CLI) runField(ctx context.Context, nodesPath string, opts pipeline.Options, output string, samples int, sampleOutput string, noCache bool) error {
	if sampleOutput != "" && samples <= 0 {
		return fmt.Errorf("--sample-output requires --samples")
	}

	nodes, err := postio.ImportNodes(nodesPath)
	if err != nil {
		return fmt.Errorf("load nodes %s: %w", nodesPath, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.SetDefaults()

	positions, _, err := space.PrepareNodes(nodes, opts.SpaceScale)
	if err != nil {
		return fmt.Errorf("prepare nodes: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d³ density field...", opts.Resolution))
	spinner.Start()

	f, cacheHit, err := runner.FieldWithCacheInfo(ctx, positions, opts)
	if err != nil {
		spinner.StopWithError("Field generation failed")
		return fmt.Errorf("generate field: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	summary := field.Summarize(f)
	printSuccess("Field complete")
	printStats(0, len(positions), 0, cacheHit)
	printNewline()
	printKeyValue("cells", fmt.Sprintf("%d", summary.Cells))
	printKeyValue("mean", fmt.Sprintf("%.6g", summary.Mean))
	printKeyValue("stddev", fmt.Sprintf("%.6g", summary.StdDev))
	printKeyValue("max", fmt.Sprintf("%.6g", summary.Max))
	printKeyValue("entropy", fmt.Sprintf("%.4f / %.4f", summary.Entropy, summary.MaxEntropy))
	printKeyValue("top 1% share", fmt.Sprintf("%.2f%%", summary.Concentration*100))

	if output != "" {
		if err := writeJSONFile(f, output); err != nil {
			return fmt.Errorf("write field %s: %w", output, err)
		}
		printNewline()
		printFile(output)
	}

	if samples > 0 {
		rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
		points := f.Sample(samples, rng)
		if sampleOutput != "" {
			if err := writeJSONFile(points, sampleOutput); err != nil {
				return fmt.Errorf("write samples %s: %w", sampleOutput, err)
			}
			printFile(sampleOutput)
		} else {
			printDetail("sampled %d points (use --sample-output to save them)", len(points))
		}
	}

	return nil
}

func writeJSONFile(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
