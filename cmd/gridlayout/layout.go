package main

import (
	"context"

	"github.com/benoitkugler/gridlayout/html/tree"
	"github.com/benoitkugler/gridlayout/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type layoutResult struct {
	File   string     `json:"file" yaml:"file"`
	Width  float64    `json:"width" yaml:"width"`
	Height float64    `json:"height,omitempty" yaml:"height,omitempty"`
	Boxes  []tree.Box `json:"boxes" yaml:"boxes"`
}

type measureResult struct {
	File  string             `json:"file" yaml:"file"`
	Grids []tree.Measurement `json:"grids" yaml:"grids"`
}

func newLayoutCmd(a *app) *cobra.Command {
	var resize []float64
	cmd := &cobra.Command{
		Use:   "layout FILE...",
		Short: "Lay out the grid containers of HTML or YAML documents",
		Long: `Lay out the grid containers of each input in the viewport, and print
the position of the grid tracks and items.

With --resize, each document is laid out again at the given widths,
reusing the previous layout when it is still valid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([][]layoutResult, len(args))
			err := a.forEach(cmd.Context(), args, func(i int, doc *tree.Document) error {
				viewport := tree.Viewport{Width: a.cfg.Viewport.Width, Height: a.cfg.Viewport.Height}
				widths := append([]float64{viewport.Width}, resize...)
				for _, width := range widths {
					viewport.Width = width
					results[i] = append(results[i], layoutResult{
						File:   args[i],
						Width:  width,
						Height: viewport.Height,
						Boxes:  doc.Layout(viewport, a.cfg.Metrics()),
					})
				}
				return nil
			})
			if err != nil {
				return err
			}
			var out []layoutResult
			for _, r := range results {
				out = append(out, r...)
			}
			return a.write(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Float64SliceVar(&resize, "resize", nil, "additional viewport widths")
	return cmd
}

func newMeasureCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "measure FILE...",
		Short: "Print the intrinsic sizes of the top level grid containers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]measureResult, len(args))
			err := a.forEach(cmd.Context(), args, func(i int, doc *tree.Document) error {
				results[i] = measureResult{File: args[i], Grids: doc.Measure(a.cfg.Metrics())}
				return nil
			})
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), results)
		},
	}
}

// forEach loads the files and calls fn on each document, with at most
// cfg.Concurrency files in flight. The first error cancels the
// remaining files.
func (a *app) forEach(ctx context.Context, files []string, fn func(i int, doc *tree.Document) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := tree.LoadFile(file)
			if err != nil {
				return err
			}
			logger.ProgressLogger.Infof("processing %s", file)
			return fn(i, doc)
		})
	}
	return g.Wait()
}
