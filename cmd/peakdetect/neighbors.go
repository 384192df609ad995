package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spike/errs"
	"github.com/cwbudde/algo-spike/internal/config"
	"github.com/cwbudde/algo-spike/probe"
)

var errNoProbe = fmt.Errorf("%w: --probe is required", errs.ErrInvalidArgument)

func newNeighborsCmd(load loadFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neighbors",
		Short: "Print the channel neighborhoods of a probe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := load(cmd)
			if err != nil {
				return err
			}
			if c.Probe == "" {
				return errNoProbe
			}
			geom, err := probe.LoadGeometryFile(c.Probe)
			if err != nil {
				return err
			}
			graph, err := probe.NewGraph(geom, c.RadiusUm)
			if err != nil {
				return err
			}
			return printNeighbors(cmd, geom, graph, c.RadiusUm)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func printNeighbors(cmd *cobra.Command, geom probe.Geometry, graph *probe.Graph, radius float64) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tX [um]\tY [um]\tDegree\tNeighbors\n"); err != nil {
		return writeErr(err)
	}
	if _, err := fmt.Fprintf(tw, "-------\t------\t------\t------\t---------\n"); err != nil {
		return writeErr(err)
	}
	for c, pos := range geom {
		nb := graph.Neighbors(c)
		ids := make([]string, len(nb))
		for i, k := range nb {
			ids[i] = fmt.Sprint(k)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%d\t%s\n",
			c, pos.X, pos.Y, graph.Degree(c), strings.Join(ids, ",")); err != nil {
			return writeErr(err)
		}
	}
	if err := tw.Flush(); err != nil {
		return writeErr(err)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "\n%d channels, radius %.1f um, mean degree %.2f\n",
		graph.Len(), radius, graph.MeanDegree())
	return writeErr(err)
}

func writeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: write output: %w", errs.ErrIOFailure, err)
}
