package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var oppositionsCmd = &cobra.Command{
	Use:   "oppositions",
	Short: "List the oppositions of Mars in the configured search span",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		opps, err := engine.Oppositions()
		if err != nil {
			return err
		}
		for k, o := range opps {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d\t%s\n", k, o)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(oppositionsCmd)
}
