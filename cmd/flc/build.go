package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foolang-project/flc/internal/codegen"
	"github.com/foolang-project/flc/internal/ir"
)

var (
	buildOutput string
	buildTarget string
)

var buildCmd = &cobra.Command{
	Use:   "build <unit.json>",
	Short: "Compile a JSON-encoded compilation unit to an ELF64 relocatable object",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file (default: input file with .o extension)")
	buildCmd.Flags().StringVar(&buildTarget, "target", "linux-amd64", "backend target tag")
}

func runBuild(cmd *cobra.Command, args []string) error {
	target := buildTarget
	if !cmd.Flags().Changed("target") && viper.IsSet("target") {
		target = viper.GetString("target")
	}

	unit, err := readUnit(args[0])
	if err != nil {
		return err
	}

	obj, err := codegen.Compile(target, unit)
	if err != nil {
		return err
	}

	out := buildOutput
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".o"
		if dir := viper.GetString("output_dir"); dir != "" {
			out = filepath.Join(dir, filepath.Base(out))
		}
	}

	encoded := obj.Encode()
	if err := os.WriteFile(out, encoded, 0644); err != nil {
		return err
	}

	logger.Info("compiled unit", "input", args[0], "output", out, "target", target, "bytes", len(encoded))
	cmd.Printf("built %s -> %s\n", args[0], out)
	return nil
}

func readUnit(path string) (ir.CompilationUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ir.CompilationUnit{}, err
	}
	var unit ir.CompilationUnit
	if err := json.Unmarshal(data, &unit); err != nil {
		return ir.CompilationUnit{}, err
	}
	return unit, nil
}
