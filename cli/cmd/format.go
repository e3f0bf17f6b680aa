package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/gofrs/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/vippsas/codefmt/config"
	"github.com/vippsas/codefmt/lex"
	"github.com/vippsas/codefmt/options"
)

var (
	formatWrite      bool
	formatOnly       []string
	formatDumpTokens bool
	formatDryRun     bool
	formatFragment   bool
)

var formatCmd = &cobra.Command{
	Use:   "format [path...]",
	Short: "rewrite files in place, or print the formatted result to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := config.Load(configPath)
		if err != nil {
			return err
		}

		if formatFragment {
			if formatWrite {
				return errors.New("--write cannot be combined with --fragment (stdin has nowhere to write back to)")
			}
			return formatFragmentFromStdin(opts)
		}

		if len(args) == 0 {
			args = []string{"."}
		}
		files, err := walkSourceFiles(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return errors.New("no source files found")
		}

		anyFailed := false
		for _, path := range files {
			if verbose {
				log.WithField("file", path).Info("formatting")
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			if formatDumpTokens {
				dumpTokens(string(src))
				continue
			}
			out, ok := runFormat(path, string(src), opts, formatOnly)
			if !ok {
				anyFailed = true
				continue
			}
			if err := emitFormatResult(path, string(src), out); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
		if anyFailed {
			return errors.New("one or more files failed to format")
		}
		return nil
	},
}

// emitFormatResult applies the --dry-run/--write policy to one file's
// formatted output: a unified diff, an in-place rewrite, or the full text
// on stdout.
func emitFormatResult(path, src, out string) error {
	if out == src {
		return nil
	}
	if formatDryRun {
		return printUnifiedDiff(path, src, out)
	}
	if !formatWrite {
		fmt.Print(out)
		return nil
	}
	return writeFileAtomically(path, []byte(out))
}

// printUnifiedDiff prints a `diff -u`-style patch of src -> out, the
// `--dry-run` alternative to rewriting the file in place.
func printUnifiedDiff(path, src, out string) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(src),
		B:        difflib.SplitLines(out),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

// formatFragmentFromStdin reads a code fragment from stdin and writes the
// formatted result (or, under --dry-run, a unified diff) to stdout.
// Fragment mode forces options.Fragment on regardless of the config file,
// since whole-file rules (final newline, header strip) don't apply to a
// snippet with no file boundaries.
func formatFragmentFromStdin(opts options.Options) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	opts.Fragment = true
	out, ok := runFormat("<stdin>", string(src), opts, formatOnly)
	if !ok {
		return errors.New("formatting stdin failed")
	}
	if formatDryRun {
		return printUnifiedDiff("<stdin>", string(src), out)
	}
	fmt.Print(out)
	return nil
}

func init() {
	formatCmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "write result back to the source file instead of stdout")
	formatCmd.Flags().StringSliceVar(&formatOnly, "only", nil, "restrict to this comma-separated subset of rules, in pipeline order")
	formatCmd.Flags().BoolVar(&formatDumpTokens, "dump-tokens", false, "print the lexed token stream instead of formatting")
	formatCmd.Flags().BoolVar(&formatDryRun, "dry-run", false, "print a unified diff instead of writing or printing the full result")
	formatCmd.Flags().BoolVar(&formatFragment, "fragment", false, "read a code fragment from stdin instead of walking path arguments")
	rootCmd.AddCommand(formatCmd)
}

// dumpTokens prints the raw lexed token stream for src, the same repr.String
// dump the teacher's query-fixture tests used to show a mismatch's actual
// shape rather than its Go-syntax %#v noise.
func dumpTokens(src string) {
	for _, t := range lex.Tokenize(src) {
		fmt.Println(repr.String(t))
	}
}

// writeFileAtomically writes data to a sibling temp file (named with a
// random v4 UUID so concurrent runs over the same tree never collide) and
// renames it over path, so a crash or a concurrent reader never observes a
// truncated file.
func writeFileAtomically(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.Must(uuid.NewV4()).String()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// walkSourceFiles expands args (files or directories) into the list of
// source files to process, recursing into directories the same way the
// teacher's find command walked a tree for *.sql files.
func walkSourceFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.Walk(arg, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.HasSuffix(info.Name(), sourceExt) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

const sourceExt = ".src"
