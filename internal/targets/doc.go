// Package targets implements the target list loader: it reads the
// user-supplied list of taxon identifiers and turns it into either a
// model.TargetSet (keep/remove) or an ordered list of model.LabelPair
// (rename).
//
// List files have one entry per line. Blank lines and lines starting with
// the comment prefix ("#" by default) are skipped. Lines may end in "\n"
// or "\r\n".
//
// For keep and remove only the first tab-separated field counts. For
// rename a line is "old<TAB>new". A line without a tab falls back to the
// legacy convention, where old is the text before the first "_" and new is
// the whole line, unless strict mode turns it into a
// *model.MalformedListError.
package targets
