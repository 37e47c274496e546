// Package newick reads and writes single phylogenetic trees in Newick
// format.
//
// Reading follows the common conventions of tree-building programs:
//   - labels may be unquoted or single-quoted ('' escapes a quote)
//   - bracketed comments ([...]) are skipped wherever whitespace may appear
//   - a numeric label on an internal clade is a support value and is stored
//     as the clade's confidence, not its name
//   - the trailing semicolon may be omitted
//
// Parse errors are *model.MalformedInputError values carrying the byte
// offset of the offending token.
//
// Writing emits the tree on one line terminated by ";\n". Internal clades
// print their name when named, otherwise their confidence. Numbers use the
// shortest decimal form that reads back to the same float64. Names that
// would not read back unchanged, such as those containing spaces or
// punctuation or an internal name that looks like a number, are
// single-quoted.
package newick
