package seqfilter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/seqtree/internal/model"
)

func records(pairs ...string) []model.SequenceRecord {
	out := make([]model.SequenceRecord, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.SequenceRecord{Label: pairs[i], Residues: pairs[i+1]})
	}
	return out
}

func labels(recs []model.SequenceRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Label)
	}
	return out
}

// TestRename_MapsAndReportsMisses: two mapped records are renamed and the
// third is reported as not found.
func TestRename_MapsAndReportsMisses(t *testing.T) {
	in := records("seq1", "acgt", "seq2", "ttga", "seq3", "cccc")
	pairs := []model.LabelPair{{Old: "seq1", New: "new1"}, {Old: "seq2", New: "new2"}}

	res := Rename(in, pairs)

	assert.Equal(t, []model.SequenceRecord{
		{Label: "new1", Residues: "ACGT"},
		{Label: "new2", Residues: "TTGA"},
	}, res.Records)
	assert.Equal(t, []string{"seq3"}, res.NotFound)
	assert.Empty(t, res.Duplicates)
	assert.Equal(t, 3, res.Input)
}

// TestRename_CollisionKeepsFirst: two inputs mapping to the same new name
// produce one output record and one duplicate entry.
func TestRename_CollisionKeepsFirst(t *testing.T) {
	in := records("a", "AAAA", "b", "CCCC")
	pairs := []model.LabelPair{{Old: "a", New: "new1"}, {Old: "b", New: "new1"}}

	res := Rename(in, pairs)

	require.Len(t, res.Records, 1)
	assert.Equal(t, model.SequenceRecord{Label: "new1", Residues: "AAAA"}, res.Records[0])
	assert.Equal(t, []string{"new1"}, res.Duplicates)
	assert.Empty(t, res.NotFound)
}

// TestRename_RepeatedInputLabel: a label repeated in the input collides
// with its own earlier rename.
func TestRename_RepeatedInputLabel(t *testing.T) {
	in := records("a", "AA", "a", "CC")
	res := Rename(in, []model.LabelPair{{Old: "a", New: "x"}})

	assert.Equal(t, []string{"x"}, labels(res.Records))
	assert.Equal(t, "AA", res.Records[0].Residues)
	assert.Equal(t, []string{"x"}, res.Duplicates)
}

// TestRename_Idempotent: re-running the same mapping over renamed output
// renames nothing and reports every record as not found.
func TestRename_Idempotent(t *testing.T) {
	in := records("seq1", "acgt", "seq2", "ttga")
	pairs := []model.LabelPair{{Old: "seq1", New: "new1"}, {Old: "seq2", New: "new2"}}

	first := Rename(in, pairs)
	second := Rename(first.Records, pairs)

	assert.Empty(t, second.Records)
	assert.Empty(t, second.Duplicates)
	assert.Equal(t, []string{"new1", "new2"}, second.NotFound)
}

// TestKeep: only targeted labels survive, in input order, once each.
func TestKeep(t *testing.T) {
	in := records("s1", "a", "s2", "c", "s3", "g", "s1", "t")
	res := Keep(in, model.NewTargetSet("s3", "s1"))

	assert.Equal(t, []model.SequenceRecord{
		{Label: "s1", Residues: "A"},
		{Label: "s3", Residues: "G"},
	}, res.Records)
	assert.Equal(t, []string{"s1"}, res.Duplicates)
	assert.Empty(t, res.Unmatched)
	assert.Empty(t, res.NotFound)
}

// TestKeep_MissingTarget: a target with no record adds nothing to the
// output and is not a not-found or duplicate warning; it is listed as
// unmatched.
func TestKeep_MissingTarget(t *testing.T) {
	in := records("s1", "a", "s2", "c")
	res := Keep(in, model.NewTargetSet("s1", "ghost"))

	assert.Equal(t, []string{"s1"}, labels(res.Records))
	assert.Empty(t, res.NotFound)
	assert.Empty(t, res.Duplicates)
	assert.Equal(t, []string{"ghost"}, res.Unmatched)
}

// TestRemove: targeted labels are dropped and listed; the rest survive.
func TestRemove(t *testing.T) {
	in := records("s1", "a", "s2", "c", "s3", "g")
	res := Remove(in, model.NewTargetSet("s2", "ghost"))

	assert.Equal(t, []string{"s1", "s3"}, labels(res.Records))
	assert.Equal(t, []string{"s2"}, res.Removed)
	assert.Equal(t, []string{"ghost"}, res.Unmatched)
}

// TestKeepRemove_Partition: keep and remove with the same target set split
// the deduplicated input into two disjoint halves.
func TestKeepRemove_Partition(t *testing.T) {
	in := records("a", "1", "b", "2", "c", "3", "a", "4", "d", "5")
	targets := model.NewTargetSet("b", "d", "zz")

	kept := Keep(in, targets)
	removed := Remove(in, targets)

	union := map[string]int{}
	for _, r := range kept.Records {
		union[r.Label]++
	}
	for _, r := range removed.Records {
		union[r.Label]++
	}

	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}, union,
		"every distinct input label appears in exactly one output")
}

// TestResidues_UpperCasedOnly: every emitted residue string is the
// upper-cased input, nothing else changes.
func TestResidues_UpperCasedOnly(t *testing.T) {
	in := records("x", "acgtn-RYkm")
	for _, res := range []*Result{
		Keep(in, model.NewTargetSet("x")),
		Remove(in, model.NewTargetSet()),
		Rename(in, []model.LabelPair{{Old: "x", New: "y"}}),
	} {
		require.Len(t, res.Records, 1)
		assert.Equal(t, strings.ToUpper(in[0].Residues), res.Records[0].Residues)
	}
}

// TestResidues_NonASCIIBytesUntouched: only ASCII letters change case;
// other bytes, valid UTF-8 or not, are copied as they are.
func TestResidues_NonASCIIBytesUntouched(t *testing.T) {
	in := records("x", "ac\xffgt\xc3\xa9n")
	res := Keep(in, model.NewTargetSet("x"))

	require.Len(t, res.Records, 1)
	assert.Equal(t, "AC\xffGT\xc3\xa9N", res.Records[0].Residues)
	assert.Equal(t, len(in[0].Residues), len(res.Records[0].Residues))
}

// TestApply dispatches by action and rejects unknown actions.
func TestApply(t *testing.T) {
	in := records("a", "x")

	res, err := Apply(model.ActionKeep, in, model.NewTargetSet("a"), nil)
	require.NoError(t, err)
	assert.Equal(t, model.ActionKeep, res.Action)

	res, err = Apply(model.ActionRename, in, nil, []model.LabelPair{{Old: "a", New: "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, labels(res.Records))

	_, err = Apply(model.Action("prune"), in, nil, nil)
	assert.Error(t, err)
}
