package main

import (
	"github.com/spf13/cobra"
)

// NewCharCmd creates the char command.
func NewCharCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "char <character>",
		Short: "Show the structure of a single character",
		Long: `Char prints the character data entry of one Han character: its radical,
decomposition, etymology and readings.

Examples:
  cnlearn char 好
  cnlearn char 好 -f json`,
		Args: cobra.ExactArgs(1),
		RunE: runCharCmd,
	}
	addFormatFlag(cmd)
	return cmd
}

func runCharCmd(cmd *cobra.Command, args []string) error {
	w, err := newWriter(cmd)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.Catalog().Character(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	_, err = w.WriteCharacter(entry)
	return err
}
