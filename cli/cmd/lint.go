package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vippsas/codefmt/config"
)

var lintCmd = &cobra.Command{
	Use:   "lint [path...]",
	Short: "exit non-zero if any file would be reformatted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}
		opts, err := config.Load(configPath)
		if err != nil {
			return err
		}

		files, err := walkSourceFiles(args)
		if err != nil {
			return err
		}

		var dirty []string
		anyFailed := false
		for _, path := range files {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			out, ok := runFormat(path, string(src), opts, nil)
			if !ok {
				anyFailed = true
				continue
			}
			if out != string(src) {
				dirty = append(dirty, path)
			}
		}

		for _, path := range dirty {
			fmt.Println(path)
		}
		if anyFailed {
			return errors.New("one or more files failed to lint")
		}
		if len(dirty) > 0 {
			return fmt.Errorf("%d file(s) not formatted", len(dirty))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
