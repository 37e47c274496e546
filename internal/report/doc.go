// Package report turns filter results into the end-of-run output.
//
// A Report is built from either a seqfilter or a treefilter result and can
// be rendered three ways:
//
//   - Printer writes the progress lines and warning blocks on stdout, in
//     the layout users of the original scripts expect
//     ("1/3 - Filtering sequence... a", "Renaming A as X").
//   - WriteJSON prints the same data as an indented JSON document for
//     --json.
//   - WriteYAMLFile stores it as YAML for --report.
//
// Warnings never change the exit status; Warnings counts them so callers
// can log a summary.
package report
