package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/pkg/cache"
	"github.com/matzehuels/dockyard/pkg/layout"
	"github.com/matzehuels/dockyard/pkg/observability"
)

// Output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPNG: true, formatPDF: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple outputs)
	formats []string // output formats: "dot", "svg", "png", "pdf"
	scale   float64  // PNG scale factor
	stored  bool     // read the layout from the named-layout store
	noCache bool     // skip the rendered SVG cache
}

// renderCommand exports a layout as a Graphviz diagram.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "render [file|name]",
		Short: "Render a layout to DOT, SVG, PNG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.stored, "stored", false, "treat the argument as a named layout in the store")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always run Graphviz instead of reusing a cached SVG")

	return cmd
}

// parseFormats parses the --format flag. If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', 'png' or 'pdf')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath names the file for one format.
func outputPath(opts *renderOpts, input, format string) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) (err error) {
	prog := newProgress(c.Logger)
	start := time.Now()
	defer func() { observability.Layout().OnRender(ctx, opts.formats, time.Since(start), err) }()

	d, err := c.loadLayout(ctx, input, opts.stored)
	if err != nil {
		return err
	}
	c.Logger.Infof("Rendering %s (%d dockables)", input, len(d.IDs()))

	dot := layout.ToDOT(d)
	var svg []byte
	for _, format := range opts.formats {
		var data []byte
		switch format {
		case formatDOT:
			data = []byte(dot)
		default:
			if svg == nil {
				if svg, err = c.renderSVG(ctx, input, dot, opts.noCache); err != nil {
					return err
				}
			}
			data, err = convertSVG(ctx, svg, format, opts.scale)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
		}

		path := outputPath(opts, input, format)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.Logger.Debugf("Generated %s: %d bytes", format, len(data))
		printFile(path)
	}
	prog.done("Rendered " + input)
	return nil
}

// renderSVG runs Graphviz on dot, reusing a cached result when one exists.
// Cache failures only cost the speedup. name is recorded with the artifact
// for "cache list".
func (c *CLI) renderSVG(ctx context.Context, name, dot string, noCache bool) ([]byte, error) {
	rc := c.renderCache(noCache)
	defer rc.Close()

	key := cache.ArtifactKey(dot, formatSVG)
	if a, hit, err := rc.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, key.Format)
		c.Logger.Debug("svg cache hit", "layout", a.Layout, "created", a.CreatedAt.Format(time.RFC3339))
		return a.Data, nil
	}
	observability.Cache().OnCacheMiss(ctx, key.Format)

	svg, err := layout.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	if err := rc.Put(ctx, key, name, svg, cache.DefaultTTL); err != nil {
		c.Logger.Warn("svg cache write failed", "err", err)
		return svg, nil
	}
	observability.Cache().OnCacheSet(ctx, key.Format, len(svg))
	return svg, nil
}

// renderCache opens the render cache, or a NullCache when caching is
// disabled or the directory is unusable.
func (c *CLI) renderCache(noCache bool) cache.Cache {
	if noCache {
		c.Logger.Debug("svg cache disabled")
		return cache.NewNullCache()
	}
	fc, err := c.openFileCache()
	if err != nil {
		c.Logger.Warn("render cache unavailable", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

func convertSVG(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	switch format {
	case formatPNG:
		return layout.ToPNG(ctx, svg, scale)
	case formatPDF:
		return layout.ToPDF(ctx, svg)
	}
	return svg, nil
}

// loadLayout reads a layout file, or a named layout when stored is set.
func (c *CLI) loadLayout(ctx context.Context, arg string, stored bool) (layout.Description, error) {
	if !stored {
		return layout.ImportJSON(arg)
	}
	store, err := c.openStore(ctx)
	if err != nil {
		return layout.Description{}, err
	}
	defer store.Close()
	return store.Load(ctx, arg)
}
