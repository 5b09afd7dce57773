package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Faultbox/frameview/internal/config"
	"github.com/Faultbox/frameview/internal/expr"
	"github.com/Faultbox/frameview/internal/structure"
)

// sourceOptions are the flags shared by every subcommand. Values given on
// the command line override the config file.
type sourceOptions struct {
	configPath string
	nodes      string
	edges      string
	vars       map[string]string
	formulas   map[string]string
}

func (o *sourceOptions) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.configPath, "config", "c", "", "Path to frameview config file")
	f.StringVar(&o.nodes, "nodes", "", "Nodes CSV (X,Y,Z)")
	f.StringVar(&o.edges, "edges", "", "Edges CSV (start_node,end_node)")
	f.StringToStringVar(&o.vars, "var", nil, "Input variable, NAME=VALUE (repeatable)")
	f.StringToStringVar(&o.formulas, "formula", nil, "Derived variable, NAME=EXPR (repeatable)")
}

// settings merges the config file with the flags.
func (o *sourceOptions) settings() (config.StructureConfig, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return config.StructureConfig{}, err
	}
	sc := cfg.Structure
	if o.nodes != "" {
		sc.Nodes = o.nodes
	}
	if o.edges != "" {
		sc.Edges = o.edges
	}

	if len(o.vars) > 0 {
		merged := make(map[string]float64, len(sc.Variables)+len(o.vars))
		for k, v := range sc.Variables {
			merged[k] = v
		}
		for k, raw := range o.vars {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return config.StructureConfig{}, fmt.Errorf("--var %s=%q: not a number", k, raw)
			}
			merged[k] = v
		}
		sc.Variables = merged
	}

	if len(o.formulas) > 0 {
		merged := make(map[string]string, len(sc.Formulas)+len(o.formulas))
		for k, v := range sc.Formulas {
			merged[k] = v
		}
		for k, v := range o.formulas {
			merged[k] = v
		}
		sc.Formulas = merged
	}
	return sc, nil
}

// variables returns the fully resolved variable set: defaults, inputs and
// derived formulas.
func (o *sourceOptions) variables() (expr.Vars, error) {
	sc, err := o.settings()
	if err != nil {
		return nil, err
	}
	return structure.ResolveVariables(sc.Variables, sc.Formulas)
}

func (o *sourceOptions) load() (*structure.FrameStructure, error) {
	sc, err := o.settings()
	if err != nil {
		return nil, err
	}
	return structure.LoadFiles(sc.Nodes, sc.Edges, sc.Variables, sc.Formulas)
}
