package main

import (
	"github.com/npillmayer/dhchain/trajectory"
	"github.com/spf13/cobra"
)

type sampleOutput struct {
	Index         int        `yaml:"index" json:"index"`
	Configuration []float64  `yaml:"configuration,flow" json:"configuration"`
	Tip           [3]float64 `yaml:"tip,flow" json:"tip"`
}

func newTrajectoryCmd(opts *options) *cobra.Command {
	var from, to []float64
	var steps, anchor int
	var staged bool
	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "Interpolate between two configurations and trace a frame origin",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadChain()
			if err != nil {
				return err
			}
			var m trajectory.Motion
			if staged {
				m, err = trajectory.Staged(from, to, steps)
			} else {
				m, err = trajectory.Interpolate(from, to, steps)
			}
			if err != nil {
				return err
			}
			if anchor < 0 {
				anchor = c.Len() - 1
			}
			var samples []sampleOutput
			i := 0
			for p, err := range trajectory.Sweep(c, m, anchor) {
				if err != nil {
					return err
				}
				samples = append(samples, sampleOutput{Index: i, Tip: vec(p)})
				i++
			}
			for i, q := range m.All() {
				samples[i].Configuration = q
			}
			return opts.write(cmd.OutOrStdout(), samples)
		},
	}
	cmd.Flags().Float64SliceVar(&from, "from", nil, "Start configuration, comma separated")
	cmd.Flags().Float64SliceVar(&to, "to", nil, "End configuration, comma separated")
	cmd.Flags().IntVar(&steps, "steps", 10, "Number of interpolation steps")
	cmd.Flags().IntVar(&anchor, "anchor", -1, "Frame to trace (default: last frame)")
	cmd.Flags().BoolVar(&staged, "staged", false, "Move one joint at a time")
	return cmd
}
