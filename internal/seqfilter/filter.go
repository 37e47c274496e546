package seqfilter

import (
	"fmt"

	"github.com/shinji-kodama/seqtree/internal/model"
	"github.com/shinji-kodama/seqtree/internal/targets"
)

// Result is the outcome of one filter or rename pass.
type Result struct {
	// Action is the operation that produced this result.
	Action model.Action

	// Input is the number of records read, including repeats.
	Input int

	// Records is the output collection in input order.
	Records []model.SequenceRecord

	// NotFound lists input labels absent from the rename list (rename only).
	NotFound []string

	// Duplicates lists collisions: for rename, new names that were already
	// emitted; for keep/remove, input labels that repeat an earlier record.
	Duplicates []string

	// Removed lists labels dropped because they are in the target set
	// (remove only).
	Removed []string

	// Unmatched lists targets, in list order, that matched no input record
	// (keep/remove only).
	Unmatched []string
}

// Rename relabels records using pairs.
//
// For each record in order: if its label is an old name and the mapped new
// name has not been emitted yet, the record is emitted under the new name;
// if the new name was already emitted, the record is dropped and the new
// name is recorded as a duplicate; if the label is not an old name, the
// record is dropped and recorded as not found.
func Rename(records []model.SequenceRecord, pairs []model.LabelPair) *Result {
	mapping := targets.Mapping(pairs)

	res := &Result{Action: model.ActionRename, Input: len(records)}
	emitted := make(map[string]struct{}, len(pairs))
	for _, rec := range records {
		newName, ok := mapping[rec.Label]
		if !ok {
			res.NotFound = append(res.NotFound, rec.Label)
			continue
		}
		if _, dup := emitted[newName]; dup {
			res.Duplicates = append(res.Duplicates, newName)
			continue
		}
		emitted[newName] = struct{}{}
		res.Records = append(res.Records, model.SequenceRecord{
			Label:    newName,
			Residues: upperResidues(rec.Residues),
		})
	}
	return res
}

// Keep emits one record per distinct label that is in targets, first
// occurrence wins. Targets with no record are listed in Unmatched.
func Keep(records []model.SequenceRecord, set *model.TargetSet) *Result {
	return filter(model.ActionKeep, records, set)
}

// Remove emits one record per distinct label that is not in targets, first
// occurrence wins. Targets with no record are listed in Unmatched.
func Remove(records []model.SequenceRecord, set *model.TargetSet) *Result {
	return filter(model.ActionRemove, records, set)
}

func filter(action model.Action, records []model.SequenceRecord, set *model.TargetSet) *Result {
	res := &Result{Action: action, Input: len(records)}
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		if _, dup := seen[rec.Label]; dup {
			res.Duplicates = append(res.Duplicates, rec.Label)
			continue
		}
		seen[rec.Label] = struct{}{}

		targeted := set.Contains(rec.Label)
		if action == model.ActionRemove && targeted {
			res.Removed = append(res.Removed, rec.Label)
			continue
		}
		if action == model.ActionKeep && !targeted {
			continue
		}
		res.Records = append(res.Records, model.SequenceRecord{
			Label:    rec.Label,
			Residues: upperResidues(rec.Residues),
		})
	}

	for _, name := range set.Names() {
		if _, ok := seen[name]; !ok {
			res.Unmatched = append(res.Unmatched, name)
		}
	}
	return res
}

// Apply dispatches to Keep, Remove or Rename. set is used by keep and
// remove, pairs by rename.
func Apply(action model.Action, records []model.SequenceRecord, set *model.TargetSet, pairs []model.LabelPair) (*Result, error) {
	switch action {
	case model.ActionKeep:
		return Keep(records, set), nil
	case model.ActionRemove:
		return Remove(records, set), nil
	case model.ActionRename:
		return Rename(records, pairs), nil
	default:
		return nil, fmt.Errorf("unsupported sequence action %q", action)
	}
}

// upperResidues upper-cases ASCII letters and leaves every other byte
// untouched, so residues stay byte-for-byte equal aside from case.
func upperResidues(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
