// Package cli implements the cobra-based command line of seqtree.
//
// seqtree has a single root command. This file defines it together with its
// flags and the error-to-exit-code handling; run.go holds the pipeline the
// command executes.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/seqtree/internal/model"
)

// jsonOutput selects JSON for both the run report and error output.
var jsonOutput bool

// version, commit, and date are set at build time via ldflags.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// runFlags holds the flag values of the root command. Only flags the user
// set explicitly override values from --config.
type runFlags struct {
	configPath    string
	input         string
	format        string
	action        string
	list          string
	output        string
	report        string
	commentPrefix string
	strictRename  bool
	verbose       bool
	noColor       bool
}

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	flags := &runFlags{}

	rootCmd := &cobra.Command{
		Use:   "seqtree",
		Short: "Keep, remove or rename taxa in FASTA files and Newick trees",
		Long: `seqtree filters and renames taxa in sequence and tree files using a
user-supplied target list.

For sequences (--format fasta) the list selects which records to keep or
remove, or maps old labels to new ones. For trees (--format tree) the list
selects which clades to prune, or which clade names to rewrite.

Missing targets and duplicate labels are reported as warnings and never
change the exit status.

Examples:
  seqtree --input seqs.fasta --format fasta --action keep --list ids.txt --output kept.fasta
  seqtree --input tree.nwk --format tree --action rename --list names.tsv --output renamed.nwk
  seqtree --config run.yaml --report report.yaml`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors lets Execute format errors (text or JSON).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	f := rootCmd.Flags()
	f.StringVar(&flags.input, "input", "", "FASTA or Newick file to process")
	f.StringVar(&flags.format, "format", "", "Input format: fasta, tree")
	f.StringVar(&flags.action, "action", "", "Action on target taxa: keep, remove, rename")
	f.StringVar(&flags.list, "list", "", "Target list (one name per line, or old<TAB>new for rename)")
	f.StringVar(&flags.output, "output", "", "Output file (gzip-compressed when it ends in .gz)")
	f.StringVar(&flags.configPath, "config", "", "Run configuration file (.yaml, .yml, .json, .jsonc)")
	f.StringVar(&flags.report, "report", "", "Write a YAML run report to this path")
	f.StringVar(&flags.commentPrefix, "comment-prefix", "#", "Target list lines starting with this prefix are skipped")
	f.BoolVar(&flags.strictRename, "strict-rename", false, "Reject rename list lines without a tab-separated new name")
	f.BoolVar(&flags.noColor, "no-color", false, "Disable coloured output")
	f.BoolVar(&jsonOutput, "json", false, "Print the run report (and errors) as JSON")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return model.WrapCLIError(model.ExitInvalidArgs, "invalid flags", err)
	})

	return rootCmd
}

// Execute runs the root command and handles exit codes.
//
// CLIError values carry their own exit codes; other errors exit with 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(int(handleError(os.Stderr, err)))
	}
}

// handleError prints err and returns the exit code it maps to.
func handleError(w io.Writer, err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(w, err.Error(), nil)
	return model.ExitGeneralError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stderr even in JSON mode; stdout is reserved for the report.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}
