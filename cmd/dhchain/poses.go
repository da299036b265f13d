package main

import (
	"github.com/npillmayer/dhchain"
	"github.com/npillmayer/dhchain/chain"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

type frameOutput struct {
	Joint  int            `yaml:"joint" json:"joint"`
	Name   string         `yaml:"name,omitempty" json:"name,omitempty"`
	Origin [3]float64     `yaml:"origin,flow" json:"origin"`
	Matrix *[4][4]float64 `yaml:"matrix,flow,omitempty" json:"matrix,omitempty"`
}

type posesOutput struct {
	Chain         string        `yaml:"chain,omitempty" json:"chain,omitempty"`
	Configuration []float64     `yaml:"configuration,flow" json:"configuration"`
	Frames        []frameOutput `yaml:"frames" json:"frames"`
}

func vec(v r3.Vec) [3]float64 {
	return [3]float64{dhchain.Zap(v.X), dhchain.Zap(v.Y), dhchain.Zap(v.Z)}
}

func matrix(p dhchain.Pose) *[4][4]float64 {
	m := new([4][4]float64)
	for i := range 4 {
		for j := range 4 {
			m[i][j] = dhchain.Zap(p.At(i, j))
		}
	}
	return m
}

func framesOf(c *chain.Chain, poses []dhchain.Pose, withMatrix bool) []frameOutput {
	frames := make([]frameOutput, len(poses))
	for i, p := range poses {
		frames[i] = frameOutput{Joint: i, Name: c.Joint(i).Name, Origin: vec(p.Origin())}
		if withMatrix {
			frames[i].Matrix = matrix(p)
		}
	}
	return frames
}

func newPosesCmd(opts *options) *cobra.Command {
	var q []float64
	var withMatrix bool
	cmd := &cobra.Command{
		Use:   "poses",
		Short: "Compute the pose of every joint frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadChain()
			if err != nil {
				return err
			}
			poses, err := chain.ComputePoses(c, q)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), posesOutput{
				Chain:         c.Name(),
				Configuration: q,
				Frames:        framesOf(c, poses, withMatrix),
			})
		},
	}
	cmd.Flags().Float64SliceVar(&q, "config", nil, "Driven joint values, comma separated (degrees for revolute joints)")
	cmd.Flags().BoolVar(&withMatrix, "matrix", false, "Include the full 4×4 matrices")
	return cmd
}
