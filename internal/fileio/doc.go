// Package fileio opens input files and creates output files for the
// seqtree CLI, handling gzip compression transparently.
//
// Inputs are sniffed for the gzip magic bytes (0x1f 0x8b) rather than
// trusted by extension, so a "tree.nwk" that is actually compressed still
// reads, and a plain file named "x.gz" is read as plain text. Outputs are
// compressed when their path ends in ".gz".
//
// Compression uses github.com/klauspost/pgzip. The writer returned by
// Create must be closed by the caller; Close flushes the gzip stream and
// the file and joins both errors, so a full disk is reported instead of
// leaving a truncated archive behind.
package fileio
