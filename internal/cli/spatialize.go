package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/postscape/postscape/pkg/pipeline"
	"github.com/postscape/postscape/pkg/postio"
)

// spatializeCommand creates the spatialize command for placing posts in 3D space.
func (c *CLI) spatializeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	var flagOpts pipeline.Options

	cmd := &cobra.Command{
		Use:   "spatialize [nodes.json] [posts.json]",
		Short: "Place posts in 3D space around their character anchors",
		Long: `Place posts in 3D space around their character anchors.

The spatialize command takes a node list and a post list, normalizes the
nodes into a cube, assigns each character to a node round-robin, and
scatters every post inside a noisy sphere around its character's node.
The output is a post list with "coordinates" (and optionally "color")
added to each post; all other fields pass through untouched.

Identical inputs and options always produce byte-identical output.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			applyFlagOverrides(cmd, &opts, flagOpts)
			return c.runSpatialize(cmd.Context(), args[0], args[1], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <posts>.spatial.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flagOpts.Refresh, "refresh", false, "recompute even if a cached result exists")

	// Spatialization flags
	cmd.Flags().Float64Var(&flagOpts.SpaceScale, "scale", pipeline.DefaultSpaceScale, "edge length of the cube nodes are normalized into")
	cmd.Flags().Float64Var(&flagOpts.PerlinScale, "noise-scale", pipeline.DefaultPerlinScale, "spatial frequency of the position noise")
	cmd.Flags().Float64Var(&flagOpts.PerlinAmplitude, "noise-amplitude", pipeline.DefaultPerlinAmplitude, "strength of the position noise")
	cmd.Flags().StringVar(&flagOpts.NoiseMode, "noise", pipeline.DefaultNoiseMode, "noise texture: phase (default), simplex")
	cmd.Flags().BoolVar(&flagOpts.UseColors, "colors", false, "attach a per-character hex color to each post")
	cmd.Flags().Uint64Var(&flagOpts.Seed, "seed", pipeline.DefaultSeed, "random seed for reproducible placement")
	cmd.Flags().IntVar(&flagOpts.MaxPerCharacter, "max-per-character", 0, "cap posts per character (0 = unlimited)")

	return cmd
}

// applyFlagOverrides copies explicitly set flag values over config values.
// Flags beat the config file; untouched flags leave config values alone.
func applyFlagOverrides(cmd *cobra.Command, opts *pipeline.Options, flagOpts pipeline.Options) {
	flags := cmd.Flags()
	if flags.Changed("scale") {
		opts.SpaceScale = flagOpts.SpaceScale
	}
	if flags.Changed("noise-scale") {
		opts.PerlinScale = flagOpts.PerlinScale
	}
	if flags.Changed("noise-amplitude") {
		opts.PerlinAmplitude = flagOpts.PerlinAmplitude
	}
	if flags.Changed("noise") {
		opts.NoiseMode = flagOpts.NoiseMode
	}
	if flags.Changed("colors") {
		opts.UseColors = flagOpts.UseColors
	}
	if flags.Changed("seed") {
		opts.Seed = flagOpts.Seed
	}
	if flags.Changed("max-per-character") {
		opts.MaxPerCharacter = flagOpts.MaxPerCharacter
	}
	if flags.Changed("refresh") {
		opts.Refresh = flagOpts.Refresh
	}
	if flags.Changed("falloff") {
		opts.Falloff = flagOpts.Falloff
	}
	if flags.Changed("resolution") {
		opts.Resolution = flagOpts.Resolution
	}
}

// runSpatialize loads the inputs, runs the pipeline, and writes output.
func (c *CLI) runSpatialize(ctx context.Context, nodesPath, postsPath string, opts pipeline.Options, output string, noCache bool) error {
	nodes, err := postio.ImportNodes(nodesPath)
	if err != nil {
		return fmt.Errorf("load nodes %s: %w", nodesPath, err)
	}
	posts, err := postio.ImportPosts(postsPath)
	if err != nil {
		return fmt.Errorf("load posts %s: %w", postsPath, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	prog := newProgress(opts.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Spatializing %d posts...", len(posts)))
	spinner.Start()

	result, err := runner.Execute(ctx, nodes, posts, opts)
	if err != nil {
		spinner.StopWithError("Spatialization failed")
		return fmt.Errorf("spatialize: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(postsPath, filepath.Ext(postsPath))
		outputPath = base + ".spatial.json"
	}

	if err := postio.ExportPosts(result.Posts, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done(fmt.Sprintf("Spatialized %d posts", len(result.Posts)))

	printSuccess("Spatialization complete")
	printFile(outputPath)
	printStats(len(result.Posts), result.Stats.NodeCount, result.Stats.CharacterCount, result.CacheInfo.PositionHit)
	printNewline()
	printNextStep("Serve", "postscape serve "+filepath.Dir(outputPath))

	return nil
}
