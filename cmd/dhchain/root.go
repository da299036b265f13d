package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/npillmayer/dhchain/chain"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type options struct {
	chainFile string
	trace     string
	format    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "dhchain",
		Short: "dhchain computes forward kinematics of serial manipulators",
		Long: `dhchain evaluates Denavit–Hartenberg chains: frame poses for a joint
configuration, interpolated joint trajectories and derived geometry.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupTracing(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.chainFile, "chain", "", "Chain description file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&opts.trace, "trace", "Error", "Trace level: Error, Info or Debug")
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "yaml", "Output format: yaml or json")
	rootCmd.AddCommand(newPosesCmd(opts), newTrajectoryCmd(opts), newScaraCmd(opts))
	return rootCmd
}

// tracerKeys are the tracers of the dhchain packages.
var tracerKeys = []string{
	"dhchain",
	"dhchain.chain",
	"dhchain.feature",
	"dhchain.trajectory",
	"dhchain.polygon",
}

// setupTracing routes all package tracers to a Go logger writing to w,
// every one of them at the level given by --trace.
func (opts *options) setupTracing(w io.Writer) error {
	switch opts.format {
	case "yaml", "json":
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}
	level := tracing.TraceLevelFromString(opts.trace).String()
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"tracelevel.root": level,
	}
	for _, key := range tracerKeys {
		conf["tracelevel."+key] = level
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	trace2go.Teardown() // drop the tracers of an earlier run
	if err := trace2go.ConfigureRoot(conf, "tracelevel"); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, key := range tracerKeys {
		tracing.Select(key).SetOutput(w)
	}
	return nil
}

func (opts *options) loadChain() (*chain.Chain, error) {
	if opts.chainFile == "" {
		return nil, fmt.Errorf("no chain description given, use --chain")
	}
	return chain.Load(opts.chainFile)
}

func (opts *options) write(w io.Writer, v any) error {
	if opts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
