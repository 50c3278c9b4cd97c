/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/notargets/panelyze/BEM2D"
	"github.com/notargets/panelyze/InputParameters"
	"github.com/notargets/panelyze/ana"
	"github.com/notargets/panelyze/geometry2D"
)

type PanelModel struct {
	InputFile   string
	OutputFile  string
	Workers     int
	QuadOrder   int
	Profile     bool
	Verbosity   int
	PrintParams bool
}

const exampleFile = `
########################################
Title: "Circular cutout under x tension"
Material:
  E1: 10.5e6
  E2: 10.0105e6
  Nu12: 0.33
  G12: 3.947e6
  Thickness: 0.08
Panel:
  Width: 30.
  Height: 15.
  Cutouts:
    - Type: circle      # or ellipse with A, B
      Center: [15., 7.5]
      Radius: 1.5
Discretization:
  ElementsPerSide: 40
  ElementsPerCutout: 120
Loads:                  # line load per boundary: Bottom, Right, Top, Left, Cutout
  Left:
    Normal: 500.
  Right:
    Normal: 500.
Constraints:
  RigidBody: true
EvaluationPoints:
  - [15., 9.01]
Solver:
  QuadratureOrder: 6
  Recovery: linear      # or constant
########################################
`

// PanelCmd represents the panel command
var PanelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Solve a panel problem described in a YAML input file",
	Long: `
Reads the material, geometry, loads and constraints from a YAML file,
assembles and solves the boundary element system and prints the stress at
each evaluation point.

panelyze panel -I input.yaml [-o result.yaml] [--workers 8] [--quadOrder 8] [--profile]`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		pm := &PanelModel{}
		pm.InputFile, _ = cmd.Flags().GetString("inputFile")
		pm.OutputFile, _ = cmd.Flags().GetString("outputFile")
		pm.Profile, _ = cmd.Flags().GetBool("profile")
		pm.PrintParams, _ = cmd.Flags().GetBool("print")
		pm.Workers = viper.GetInt("workers")
		pm.QuadOrder = viper.GetInt("quadOrder")
		pm.Verbosity = viper.GetInt("verbosity")
		if len(pm.InputFile) == 0 {
			fmt.Printf("Example File:%s\n", exampleFile)
			return fmt.Errorf("must supply an input file (-I, --inputFile)")
		}
		if pm.Profile {
			// Stopped before the error reaches Execute, so failed runs keep their profile
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		return RunPanel(pm, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(PanelCmd)
	PanelCmd.Flags().StringP("inputFile", "I", "", "YAML file with the panel problem")
	PanelCmd.Flags().StringP("outputFile", "o", "", "write the results to this YAML file")
	PanelCmd.Flags().IntP("workers", "w", 0, "parallel workers for assembly and stress recovery, 0 uses all CPUs")
	PanelCmd.Flags().IntP("quadOrder", "q", 0, "Gauss points per element piece, overrides the input file")
	PanelCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
	PanelCmd.Flags().BoolP("print", "p", false, "print the parsed input parameters")
	_ = viper.BindPFlag("workers", PanelCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("quadOrder", PanelCmd.Flags().Lookup("quadOrder"))
}

func newLogger(verbosity int) (logr.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	cfg.DisableStacktrace = true
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}

func readInput(file string) (ip *InputParameters.PanelInput, err error) {
	var data []byte
	if data, err = os.ReadFile(file); err != nil {
		return
	}
	ip = &InputParameters.PanelInput{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	return
}

// RunPanel executes one analysis and reports the stress at the evaluation
// points to w
func RunPanel(pm *PanelModel, w io.Writer) (err error) {
	var (
		ip     *InputParameters.PanelInput
		logger logr.Logger
		opts   BEM2D.Options
		start  = time.Now()
	)
	if logger, err = newLogger(pm.Verbosity); err != nil {
		return
	}
	if ip, err = readInput(pm.InputFile); err != nil {
		return
	}
	if pm.PrintParams {
		ip.Print()
	}
	if err = ip.Validate(); err != nil {
		return
	}
	m, err := ip.NewMaterial()
	if err != nil {
		return
	}
	pn, els, err := ip.Discretize()
	if err != nil {
		return
	}
	if opts, err = ip.Options(); err != nil {
		return
	}
	if pm.Workers != 0 {
		opts.Workers = pm.Workers
	}
	if pm.QuadOrder != 0 {
		opts.QuadratureOrder = pm.QuadOrder
	}
	opts.Logger = logger.WithName("bem")
	s, err := BEM2D.NewSolver(m, els, opts)
	if err != nil {
		return
	}
	s.Panel = pn
	if err = s.Assemble(); err != nil {
		return
	}
	bc, err := ip.BoundaryConditions(els)
	if err != nil {
		return
	}
	sol, err := s.Solve(bc.Arrays())
	if err != nil {
		return
	}
	pts := ip.Points()
	st, err := s.ComputeStress(pts, sol)
	if err != nil {
		return
	}
	res := &InputParameters.Result{
		Title:     ip.Title,
		Kernel:    s.Kernel.Name(),
		Elements:  len(els),
		Condition: sol.Condition,
	}
	fmt.Fprintf(w, "%s: %d elements, %s kernel, condition %.3g\n", ip.Title, len(els), s.Kernel.Name(), sol.Condition)
	for _, c := range pn.Cutouts {
		if _, ok := c.(*geometry2D.Circular); ok {
			res.ReferenceKt = ana.OrthotropicHoleKt(m.E1, m.E2, m.Nu12, m.G12)
			fmt.Fprintf(w, "infinite plate Kt = %.4f\n", res.ReferenceKt)
			break
		}
	}
	for i, p := range pts {
		res.Stresses = append(res.Stresses, InputParameters.PointStress{
			Point: p.X, XX: st[i].XX, YY: st[i].YY, XY: st[i].XY, VonMises: st[i].VonMises(),
		})
		fmt.Fprintf(w, "%v\tsxx = %12.5g\tsyy = %12.5g\tsxy = %12.5g\tvm = %12.5g\n",
			p, st[i].XX, st[i].YY, st[i].XY, st[i].VonMises())
	}
	if len(pm.OutputFile) != 0 {
		var data []byte
		if data, err = res.Marshal(); err != nil {
			return
		}
		if err = os.WriteFile(pm.OutputFile, data, 0644); err != nil {
			return
		}
	}
	logger.Info("Analysis complete", "elapsed", time.Since(start).String())
	return
}
