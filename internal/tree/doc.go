// Package tree holds a phylogenetic tree as an arena of clades.
//
// Nodes live in a single slice and refer to each other by NodeID. The tree
// exclusively owns its nodes: pruning a clade detaches it and marks its
// whole subtree as gone, so later lookups by name miss cleanly instead of
// finding stale nodes. A name index maps every live named clade to its
// NodeID.
//
// Node labels are a tagged value (Label) and support values are a separate
// typed field, so a numeric support value is never mistaken for a taxon
// name.
//
// After a prune, an unnamed parent left with a single child is merged into
// that child and the two branch lengths are summed. Named parents are kept
// even when unary, so the final shape does not depend on prune order. The
// root itself cannot be pruned.
//
// Clade is the value form of a tree, used to build fixtures and to compare
// trees in tests.
package tree
