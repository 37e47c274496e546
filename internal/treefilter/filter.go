package treefilter

import (
	"fmt"

	"github.com/shinji-kodama/seqtree/internal/model"
	"github.com/shinji-kodama/seqtree/internal/targets"
	"github.com/shinji-kodama/seqtree/internal/tree"
)

// Result is the outcome of one prune or rename pass over a tree.
type Result struct {
	// Action is the operation that produced this result.
	Action model.Action

	// Taxa is the number of named clades before the pass.
	Taxa int

	// Pruned lists the names that were pruned, in processing order.
	Pruned []string

	// NotInTree lists prune requests that matched no live clade,
	// in processing order.
	NotInTree []string

	// Renamed lists the applied renames in preorder of the clades.
	Renamed []model.LabelPair

	// NotFound lists old names from the rename list that matched no clade,
	// in list order (rename only).
	NotFound []string

	// Duplicates lists new names that were not applied because another
	// clade already carried them (rename only).
	Duplicates []string

	// ClearedConfidence counts internal clades whose support value was
	// dropped (rename only).
	ClearedConfidence int

	// Leaves is the number of terminal clades left after the pass.
	Leaves int
}

// Rename clears the support value of every internal clade and relabels
// each clade whose name equals an old name with the matching new name.
// Each clade is relabelled at most once, so chains such as A->B, B->C do
// not cascade.
//
// A rename whose new name is already carried by a clade outside the rename
// list, or was already given to an earlier clade in preorder, is not
// applied: the clade keeps its old name and the new name is recorded in
// Duplicates. Every applied new name therefore appears exactly once among
// the renamed clades.
func Rename(t *tree.Tree, pairs []model.LabelPair) *Result {
	mapping := targets.Mapping(pairs)

	res := &Result{Action: model.ActionRename, Taxa: len(t.Taxa())}
	used := make(map[string]bool, len(pairs))

	// Names of clades the list does not touch keep their owners.
	taken := make(map[string]bool)
	for _, name := range t.Taxa() {
		if _, renamed := mapping[name]; !renamed {
			taken[name] = true
		}
	}

	for _, id := range t.Clades() {
		if !t.IsTerminal(id) {
			if _, ok := t.Confidence(id); ok {
				t.ClearConfidence(id)
				res.ClearedConfidence++
			}
		}

		label := t.Label(id)
		if !label.Named {
			continue
		}
		newName, ok := mapping[label.Name]
		if !ok {
			continue
		}
		used[label.Name] = true

		if taken[newName] {
			res.Duplicates = append(res.Duplicates, newName)
			if taken[label.Name] {
				// The kept old name clashes with an earlier rename.
				res.Duplicates = append(res.Duplicates, label.Name)
			}
			taken[label.Name] = true
			continue
		}
		taken[newName] = true
		t.SetLabel(id, tree.Named(newName))
		res.Renamed = append(res.Renamed, model.LabelPair{Old: label.Name, New: newName})
	}

	for _, p := range pairs {
		if !used[p.Old] {
			res.NotFound = append(res.NotFound, p.Old)
		}
	}
	res.Leaves = len(t.Terminals())
	return res
}

// Remove prunes every target, in list order.
func Remove(t *tree.Tree, set *model.TargetSet) *Result {
	res := &Result{Action: model.ActionRemove, Taxa: len(t.Taxa())}
	prune(t, set.Names(), res)
	res.Leaves = len(t.Terminals())
	return res
}

// Keep prunes every named clade that is not a target. The names to prune
// are taken from the tree before any pruning, in preorder; a named
// internal clade that is not a target is pruned with its whole subtree.
func Keep(t *tree.Tree, set *model.TargetSet) *Result {
	all := t.Taxa()
	res := &Result{Action: model.ActionKeep, Taxa: len(all)}

	var drop []string
	for _, name := range all {
		if !set.Contains(name) {
			drop = append(drop, name)
		}
	}
	prune(t, drop, res)
	res.Leaves = len(t.Terminals())
	return res
}

func prune(t *tree.Tree, names []string, res *Result) {
	for _, name := range names {
		// Prune only fails with tree.ErrNotInTree.
		if err := t.Prune(name); err != nil {
			res.NotInTree = append(res.NotInTree, name)
			continue
		}
		res.Pruned = append(res.Pruned, name)
	}
}

// Apply dispatches to Keep, Remove or Rename. set is used by keep and
// remove, pairs by rename.
func Apply(action model.Action, t *tree.Tree, set *model.TargetSet, pairs []model.LabelPair) (*Result, error) {
	switch action {
	case model.ActionKeep:
		return Keep(t, set), nil
	case model.ActionRemove:
		return Remove(t, set), nil
	case model.ActionRename:
		return Rename(t, pairs), nil
	default:
		return nil, fmt.Errorf("unsupported tree action %q", action)
	}
}
