package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/seqtree/internal/config"
	"github.com/shinji-kodama/seqtree/internal/fasta"
	"github.com/shinji-kodama/seqtree/internal/fileio"
	"github.com/shinji-kodama/seqtree/internal/logging"
	"github.com/shinji-kodama/seqtree/internal/model"
	"github.com/shinji-kodama/seqtree/internal/newick"
	"github.com/shinji-kodama/seqtree/internal/report"
	"github.com/shinji-kodama/seqtree/internal/seqfilter"
	"github.com/shinji-kodama/seqtree/internal/targets"
	"github.com/shinji-kodama/seqtree/internal/treefilter"
)

// resolveConfig merges the optional --config file with the flags the user
// set explicitly. Flags left at their defaults do not override file values.
func resolveConfig(cmd *cobra.Command, flags *runFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	stringFlags := []struct {
		name string
		dst  *string
		val  string
	}{
		{"input", &cfg.Input, flags.input},
		{"format", &cfg.Format, flags.format},
		{"action", &cfg.Action, flags.action},
		{"list", &cfg.List, flags.list},
		{"output", &cfg.Output, flags.output},
		{"report", &cfg.Report, flags.report},
		{"comment-prefix", &cfg.CommentPrefix, flags.commentPrefix},
	}
	for _, s := range stringFlags {
		if changed(s.name) {
			*s.dst = s.val
		}
	}

	boolFlags := []struct {
		name string
		dst  *bool
		val  bool
	}{
		{"strict-rename", &cfg.StrictRename, flags.strictRename},
		{"verbose", &cfg.Verbose, flags.verbose},
		{"no-color", &cfg.NoColor, flags.noColor},
	}
	for _, b := range boolFlags {
		if changed(b.name) {
			*b.dst = b.val
		}
	}
	return cfg, nil
}

// targetList is the parsed --list file: a set for keep/remove, ordered
// pairs for rename.
type targetList struct {
	set   *model.TargetSet
	pairs []model.LabelPair
}

func (l *targetList) count() int {
	if l.set != nil {
		return l.set.Len()
	}
	return len(l.pairs)
}

// run executes one keep/remove/rename pass as described by cfg, writing
// progress and the summary to stdout and diagnostics to stderr.
func run(stdout, stderr io.Writer, cfg *config.Config) error {
	format, action, err := cfg.Validate()
	if err != nil {
		return err
	}

	log := logging.New(stderr, cfg.Verbose, cfg.NoColor)
	log.Debug().
		Str("input", cfg.Input).
		Stringer("format", format).
		Stringer("action", action).
		Str("list", cfg.List).
		Str("output", cfg.Output).
		Msg("starting run")

	list, err := loadTargets(cfg, action)
	if err != nil {
		return err
	}
	log.Debug().Int("targets", list.count()).Msg("target list loaded")

	var rep *report.Report
	switch format {
	case model.FormatFASTA:
		rep, err = runSequences(cfg, action, list, log)
	case model.FormatTree:
		rep, err = runTree(cfg, action, list, log)
	}
	if err != nil {
		return err
	}

	if cfg.Report != "" {
		if err := rep.WriteYAMLFile(cfg.Report); err != nil {
			return err
		}
		log.Debug().Str("path", cfg.Report).Msg("report written")
	}

	if jsonOutput {
		if err := rep.WriteJSON(stdout); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		report.NewPrinter(stdout, !cfg.NoColor && !color.NoColor).Print(rep)
	}

	if n := rep.Warnings(); n > 0 {
		log.Warn().Int("warnings", n).Msg("finished with warnings")
	}
	return nil
}

func loadTargets(cfg *config.Config, action model.Action) (*targetList, error) {
	rc, err := openInput(cfg.List, "target list")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	list := &targetList{}
	if action.IsFilter() {
		list.set, err = targets.LoadTargetSet(rc, cfg.ListOptions())
	} else {
		list.pairs, err = targets.LoadLabelPairs(rc, cfg.ListOptions())
	}
	if err != nil {
		var listErr *model.MalformedListError
		if errors.As(err, &listErr) {
			return nil, model.WrapCLIError(model.ExitMalformedList,
				fmt.Sprintf("invalid target list %s", cfg.List), err)
		}
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read target list %s", cfg.List), err)
	}
	return list, nil
}

func runSequences(cfg *config.Config, action model.Action, list *targetList, log zerolog.Logger) (*report.Report, error) {
	rc, err := openInput(cfg.Input, "input")
	if err != nil {
		return nil, err
	}
	records, err := fasta.Read(rc)
	_ = rc.Close()
	if err != nil {
		return nil, inputError(cfg.Input, err)
	}
	log.Debug().Int("records", len(records)).Msg("sequences loaded")

	res, err := seqfilter.Apply(action, records, list.set, list.pairs)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgs, "cannot apply action", err)
	}
	for _, rec := range res.Records {
		log.Debug().Str("label", rec.Label).Msg("record written")
	}

	if err := writeOutput(cfg.Output, func(w io.Writer) error {
		return fasta.Write(w, res.Records)
	}); err != nil {
		return nil, err
	}
	return report.FromSequences(res, cfg.Input, cfg.Output, list.count()), nil
}

func runTree(cfg *config.Config, action model.Action, list *targetList, log zerolog.Logger) (*report.Report, error) {
	rc, err := openInput(cfg.Input, "input")
	if err != nil {
		return nil, err
	}
	t, err := newick.Read(rc)
	_ = rc.Close()
	if err != nil {
		return nil, inputError(cfg.Input, err)
	}
	log.Debug().Int("clades", t.Len()).Msg("tree loaded")

	res, err := treefilter.Apply(action, t, list.set, list.pairs)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgs, "cannot apply action", err)
	}
	for _, name := range res.Pruned {
		log.Debug().Str("taxon", name).Msg("clade pruned")
	}
	for _, name := range res.NotInTree {
		log.Debug().Str("taxon", name).Msg("clade not in tree")
	}
	for _, p := range res.Renamed {
		log.Debug().Stringer("rename", p).Msg("clade renamed")
	}
	for _, name := range res.Duplicates {
		log.Debug().Str("taxon", name).Msg("rename refused, name already in tree")
	}
	log.Debug().Int("leaves", res.Leaves).Msg("tree filtered")

	if err := writeOutput(cfg.Output, func(w io.Writer) error {
		return newick.Write(w, t)
	}); err != nil {
		return nil, err
	}
	return report.FromTree(res, cfg.Input, cfg.Output, list.count()), nil
}

// openInput opens path for reading, mapping a missing file to
// ExitFileNotFound.
func openInput(path, what string) (io.ReadCloser, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.WrapCLIError(model.ExitFileNotFound,
				fmt.Sprintf("%s file not found: %s", what, path), err)
		}
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to open %s file %s", what, path), err)
	}
	return rc, nil
}

func inputError(path string, err error) error {
	var inErr *model.MalformedInputError
	if errors.As(err, &inErr) {
		return model.WrapCLIError(model.ExitMalformedInput,
			fmt.Sprintf("malformed input %s", path), err)
	}
	return model.WrapCLIError(model.ExitGeneralError,
		fmt.Sprintf("failed to read input %s", path), err)
}

// writeOutput creates path, lets write fill it and closes it. Any failure,
// including on close, is reported as ExitWriteFailed.
func writeOutput(path string, write func(io.Writer) error) (err error) {
	wc, err := fileio.Create(path)
	if err != nil {
		return model.WrapCLIError(model.ExitWriteFailed,
			fmt.Sprintf("failed to create output %s", path), err)
	}
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = model.WrapCLIError(model.ExitWriteFailed,
				fmt.Sprintf("failed to write output %s", path), cerr)
		}
	}()

	if err := write(wc); err != nil {
		return model.WrapCLIError(model.ExitWriteFailed,
			fmt.Sprintf("failed to write output %s", path), err)
	}
	return nil
}
