// Package cli — run_test.go drives the root command in-process against
// fixture files in a temporary directory.
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/seqtree/internal/fasta"
	"github.com/shinji-kodama/seqtree/internal/fileio"
	"github.com/shinji-kodama/seqtree/internal/model"
	"github.com/shinji-kodama/seqtree/internal/report"
)

// execute runs the root command with args and returns captured stdout,
// stderr and the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--no-color"))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func exitCode(t *testing.T, err error) model.ExitCode {
	t.Helper()
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected *model.CLIError, got %v", err)
	return cliErr.Code
}

// TestRun_FastaRename renames two of three records.
func TestRun_FastaRename(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.fasta", ">seq1\nacgt\n>seq2\nAC\nGT\n>seq3\nTTTT\n")
	list := write(t, dir, "rename.tsv", "# old\tnew\nseq1\tnew1\nseq2\tnew2\n")
	out := filepath.Join(dir, "out.fasta")

	stdout, _, err := execute(t,
		"--input", in, "--format", "fasta", "--action", "rename",
		"--list", list, "--output", out)
	require.NoError(t, err)

	assert.Equal(t, ">new1\nACGT\n>new2\nACGT\n", readFile(t, out))
	assert.Contains(t, stdout, "1. Renamed - new1\n2. Renamed - new2\n")
	assert.Contains(t, stdout, "### Total of sequences not found = 1\n\t* 1 - seq3\n")
	assert.NotContains(t, stdout, "duplicates")
}

// TestRun_FastaKeepGzip reads gzip input and writes gzip output; a missing
// target is a warning, not an error.
func TestRun_FastaKeepGzip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.fasta.gz")
	w, err := fileio.Create(in)
	require.NoError(t, err)
	_, err = w.Write([]byte(">a\naaa\n>b\nccc\n>c\nggg\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	list := write(t, dir, "keep.txt", "a\n\n# skipped\nc\tnote\nghost\n")
	out := filepath.Join(dir, "out.fasta.gz")

	stdout, stderr, err := execute(t,
		"--input", in, "--format", "fasta", "--action", "keep",
		"--list", list, "--output", out)
	require.NoError(t, err)

	rc, err := fileio.Open(out)
	require.NoError(t, err)
	defer rc.Close()
	records, err := fasta.Read(rc)
	require.NoError(t, err)
	assert.Equal(t, []model.SequenceRecord{
		{Label: "a", Residues: "AAA"},
		{Label: "c", Residues: "GGG"},
	}, records)

	assert.Contains(t, stdout, "1/3 - Filtering sequence... a\n2/3 - Filtering sequence... c\n")
	assert.Contains(t, stdout, "WARNING! 1 sequence(s) not found:\n\t* ghost\n")
	assert.Contains(t, stderr, "finished with warnings")
}

// TestRun_TreeRemoveWithReport prunes a named clade and a leaf, and writes
// the YAML report.
func TestRun_TreeRemoveWithReport(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.nwk", "((A:1,B:2)P:1,(C:1,D:1)Q:1,E:1);\n")
	list := write(t, dir, "remove.txt", "P\nA\nC\n")
	out := filepath.Join(dir, "out.nwk")
	reportPath := filepath.Join(dir, "report.yaml")

	stdout, _, err := execute(t,
		"--input", in, "--format", "tree", "--action", "remove",
		"--list", list, "--output", out, "--report", reportPath)
	require.NoError(t, err)

	assert.Equal(t, "((D:1)Q:1,E:1);\n", readFile(t, out))
	assert.Contains(t, stdout, "1 - P was filtered\n2 - C was filtered\n")
	assert.Contains(t, stdout, "### Taxa not found in the input tree = 1\n\t* 1 - A\n")

	var rep report.Report
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, reportPath)), &rep))
	assert.Equal(t, model.FormatTree, rep.Format)
	assert.Equal(t, []string{"P", "C"}, rep.Pruned)
	assert.Equal(t, []string{"A"}, rep.NotInTree)
	assert.Equal(t, 3, rep.Targets)
}

// TestRun_TreeRenameClearsSupport drops internal support values on rename.
func TestRun_TreeRenameClearsSupport(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.nwk", "((A,B)95,C);")
	list := write(t, dir, "rename.tsv", "A\tAlpha\nZ\tZeta\n")
	out := filepath.Join(dir, "out.nwk")

	stdout, _, err := execute(t,
		"--input", in, "--format", "tree", "--action", "rename",
		"--list", list, "--output", out)
	require.NoError(t, err)

	assert.Equal(t, "((Alpha,B),C);\n", readFile(t, out))
	assert.Contains(t, stdout, "Renaming A as Alpha\n")
	assert.Contains(t, stdout, "### Rename entries not found in the tree = 1\n\t* 1 - Z\n")
}

// TestRun_TreeRenameCollisions keeps the old name when the new one is taken
// and reports the clash.
func TestRun_TreeRenameCollisions(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.nwk", "(A,B,C);")
	list := write(t, dir, "rename.tsv", "A\tX\nB\tX\nC\tA\n")
	out := filepath.Join(dir, "out.nwk")

	stdout, stderr, err := execute(t,
		"--input", in, "--format", "tree", "--action", "rename",
		"--list", list, "--output", out, "-v")
	require.NoError(t, err)

	assert.Equal(t, "(X,B,A);\n", readFile(t, out))
	assert.Contains(t, stdout, "Renaming A as X\nRenaming C as A\n")
	assert.Contains(t, stdout, "### Total of duplicates = 1\n\t* 1 - X\n")
	assert.NotContains(t, stdout, "not found in the tree")
	assert.Contains(t, stderr, "A -> X")
	assert.Contains(t, stderr, "leaves=3")
}

// TestRun_ConfigFileAndFlagPrecedence takes most settings from a YAML file
// and lets an explicit flag override the action.
func TestRun_ConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.fasta", ">a\nA\n>b\nC\n")
	list := write(t, dir, "ids.txt", "a\n")
	out := filepath.Join(dir, "out.fasta")
	cfg := write(t, dir, "run.yaml", fmt.Sprintf(
		"input: %q\nformat: fasta\naction: keep\nlist: %q\noutput: %q\n", in, list, out))

	_, _, err := execute(t, "--config", cfg, "--action", "remove")
	require.NoError(t, err)
	assert.Equal(t, ">b\nC\n", readFile(t, out))
}

// TestRun_JSONConfigAndReport reads a JSONC config and prints the report
// as JSON.
func TestRun_JSONConfigAndReport(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.fasta", ">a\nA\n>b\nC\n>a\nG\n")
	list := write(t, dir, "ids.txt", "b\n")
	out := filepath.Join(dir, "out.fasta")
	inJSON, _ := json.Marshal(in)
	listJSON, _ := json.Marshal(list)
	outJSON, _ := json.Marshal(out)
	cfg := write(t, dir, "run.jsonc", fmt.Sprintf(`{
  // remove b
  "input": %s,
  "format": "fasta",
  "action": "remove",
  "list": %s,
  "output": %s,
}`, inJSON, listJSON, outJSON))

	stdout, _, err := execute(t, "--config", cfg, "--json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, model.ActionRemove, rep.Action)
	assert.Equal(t, []string{"a"}, rep.Written)
	assert.Equal(t, []string{"b"}, rep.Removed)
	assert.Equal(t, []string{"a"}, rep.Duplicates)
	assert.Equal(t, 3, rep.Records)
}

// TestRun_Verbose logs per-item decisions on stderr.
func TestRun_Verbose(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.nwk", "(A,B,C);")
	list := write(t, dir, "ids.txt", "B\n")

	_, stderr, err := execute(t,
		"--input", in, "--format", "tree", "--action", "remove",
		"--list", list, "--output", filepath.Join(dir, "out.nwk"), "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "starting run")
	assert.Contains(t, stderr, "clade pruned")
	assert.Contains(t, stderr, "taxon=B")
}

// TestRun_Errors maps each failure class to its exit code.
func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	goodFasta := write(t, dir, "good.fasta", ">a\nA\n")
	badFasta := write(t, dir, "bad.fasta", "ACGT\n>a\nAC\n")
	badTree := write(t, dir, "bad.nwk", "((A,B);")
	ids := write(t, dir, "ids.txt", "a\n")
	legacy := write(t, dir, "legacy.txt", "a_2020\n")
	out := filepath.Join(dir, "out")

	tests := []struct {
		name string
		args []string
		want model.ExitCode
	}{
		{
			name: "missing input file",
			args: []string{"--input", filepath.Join(dir, "nope.fasta"), "--format", "fasta", "--action", "keep", "--list", ids, "--output", out},
			want: model.ExitFileNotFound,
		},
		{
			name: "missing list file",
			args: []string{"--input", goodFasta, "--format", "fasta", "--action", "keep", "--list", filepath.Join(dir, "nope.txt"), "--output", out},
			want: model.ExitFileNotFound,
		},
		{
			name: "malformed fasta",
			args: []string{"--input", badFasta, "--format", "fasta", "--action", "keep", "--list", ids, "--output", out},
			want: model.ExitMalformedInput,
		},
		{
			name: "malformed newick",
			args: []string{"--input", badTree, "--format", "tree", "--action", "remove", "--list", ids, "--output", out},
			want: model.ExitMalformedInput,
		},
		{
			name: "strict rename rejects single column",
			args: []string{"--input", goodFasta, "--format", "fasta", "--action", "rename", "--list", legacy, "--output", out, "--strict-rename"},
			want: model.ExitMalformedList,
		},
		{
			name: "output directory missing",
			args: []string{"--input", goodFasta, "--format", "fasta", "--action", "keep", "--list", ids, "--output", filepath.Join(dir, "no", "out.fasta")},
			want: model.ExitWriteFailed,
		},
		{
			name: "output spells the input path differently",
			args: []string{"--input", goodFasta, "--format", "fasta", "--action", "keep", "--list", ids, "--output", dir + "/sub/../good.fasta"},
			want: model.ExitInvalidArgs,
		},
		{
			name: "missing required flags",
			args: []string{"--input", goodFasta},
			want: model.ExitInvalidArgs,
		},
		{
			name: "invalid format",
			args: []string{"--input", goodFasta, "--format", "genbank", "--action", "keep", "--list", ids, "--output", out},
			want: model.ExitInvalidArgs,
		},
		{
			name: "unknown flag",
			args: []string{"--frobnicate"},
			want: model.ExitInvalidArgs,
		},
		{
			name: "missing config file",
			args: []string{"--config", filepath.Join(dir, "nope.yaml")},
			want: model.ExitFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, exitCode(t, err))
		})
	}
}

// TestRun_LegacyRenameFallback applies the underscore convention when
// strict mode is off.
func TestRun_LegacyRenameFallback(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.fasta", ">hCoV1\nac\n>hCoV2\ngt\n")
	list := write(t, dir, "names.txt", "hCoV1_Brazil_2020\n")
	out := filepath.Join(dir, "out.fasta")

	_, _, err := execute(t,
		"--input", in, "--format", "fasta", "--action", "rename",
		"--list", list, "--output", out)
	require.NoError(t, err)
	assert.Equal(t, ">hCoV1_Brazil_2020\nAC\n", readFile(t, out))
}

// TestHandleError checks text and JSON error rendering and exit codes.
func TestHandleError(t *testing.T) {
	t.Cleanup(func() { jsonOutput = false })

	t.Run("cli error text", func(t *testing.T) {
		jsonOutput = false
		var buf bytes.Buffer
		code := handleError(&buf, model.WrapCLIError(model.ExitMalformedInput, "malformed input x", errors.New("line 1")))
		assert.Equal(t, model.ExitMalformedInput, code)
		assert.Equal(t, "Error: malformed input x: line 1\n", buf.String())
	})

	t.Run("generic error", func(t *testing.T) {
		jsonOutput = false
		var buf bytes.Buffer
		code := handleError(&buf, errors.New("boom"))
		assert.Equal(t, model.ExitGeneralError, code)
		assert.Equal(t, "Error: boom\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		jsonOutput = true
		var buf bytes.Buffer
		handleError(&buf, model.WrapCLIError(model.ExitWriteFailed, "failed", errors.New("disk full")))

		var got map[string]map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "failed", got["error"]["message"])
		assert.Equal(t, "disk full", got["error"]["detail"])
	})
}
