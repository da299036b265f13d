package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/npillmayer/dhchain"
	"github.com/npillmayer/dhchain/chain"
	"github.com/npillmayer/dhchain/feature"
	"github.com/npillmayer/dhchain/polygon"
	"github.com/npillmayer/dhchain/robots"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type featureOutput struct {
	Name   string       `yaml:"name" json:"name"`
	Points [][3]float64 `yaml:"points,flow" json:"points"`
}

type scaraOutput struct {
	Configuration []float64       `yaml:"configuration,flow" json:"configuration"`
	Frames        []frameOutput   `yaml:"frames" json:"frames"`
	Features      []featureOutput `yaml:"features" json:"features"`
	PlateInside   *bool           `yaml:"plate_inside_workspace,omitempty" json:"plate_inside_workspace,omitempty"`
}

func loadScaraParams(path string) (robots.ScaraParams, error) {
	p := robots.DefaultScara()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func newScaraCmd(opts *options) *cobra.Command {
	var paramsFile string
	var theta1, theta2, bar, theta3, workspace float64
	cmd := &cobra.Command{
		Use:   "scara",
		Short: "Evaluate the SCARA arm with piston and plate",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadScaraParams(paramsFile)
			if err != nil {
				return err
			}
			s, err := robots.NewScara(p)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("bar") {
				bar = s.BarMax
			}
			q := s.Configuration(theta1, theta2, bar, theta3)
			out, err := evaluateScara(s, q, workspace)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params", "", "YAML file with arm dimensions")
	cmd.Flags().Float64Var(&theta1, "theta1", 30, "Shoulder angle in degrees")
	cmd.Flags().Float64Var(&theta2, "theta2", 0, "Elbow angle in degrees")
	cmd.Flags().Float64Var(&bar, "bar", 0, "Absolute bar length (default: maximum)")
	cmd.Flags().Float64Var(&theta3, "theta3", 0, "Wrist angle in degrees")
	cmd.Flags().Float64Var(&workspace, "workspace", 0, "Half width of a square workspace to check the plate against")
	return cmd
}

func evaluateScara(s *robots.Scara, q chain.Configuration, workspace float64) (scaraOutput, error) {
	poses, err := chain.ComputePoses(s.Chain(), q)
	if err != nil {
		return scaraOutput{}, err
	}
	results, err := s.Derive(poses, q)
	if err != nil {
		return scaraOutput{}, err
	}
	out := scaraOutput{Configuration: q, Frames: framesOf(s.Chain(), poses, false)}
	for _, r := range results {
		fo := featureOutput{Name: r.Name, Points: make([][3]float64, len(r.Points))}
		for i, p := range r.Points {
			fo.Points[i] = vec(p)
		}
		out.Features = append(out.Features, fo)
	}
	if workspace > 0 {
		rim, _ := feature.Lookup(results, "plate")
		region := polygon.Box(dhchain.P(-workspace, -workspace), dhchain.P(workspace, workspace))
		inside := polygon.Inside(polygon.FromPoints(slices.Values(rim)), region)
		out.PlateInside = &inside
	}
	return out, nil
}
