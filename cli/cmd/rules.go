package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vippsas/codefmt/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "list the rule pipeline in its fixed run order",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range rules.Names() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
