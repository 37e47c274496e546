// Package treefilter prunes and renames taxa in a phylogenetic tree.
//
// Pruning works from a precomputed list of names against the live tree.
// Removing a clade takes its whole subtree with it, so later requests for
// names inside that subtree miss; such misses, like names that never
// existed, are recorded and never stop the pass.
//
// Renaming relabels each matching clade once, in preorder, and clears the
// support value of every internal clade. A new name that another clade
// already carries is refused and reported, so names stay unique.
package treefilter
