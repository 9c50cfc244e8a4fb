package main

import (
	"github.com/spf13/cobra"

	"github.com/foolang-project/flc/internal/ir"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <unit.json>",
	Short: "Pretty-print a JSON-encoded compilation unit's IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	unit, err := readUnit(args[0])
	if err != nil {
		return err
	}
	cmd.Print(ir.Dump(unit))
	return nil
}
