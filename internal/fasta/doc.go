// Package fasta reads and writes FASTA sequence files.
//
// Parsing is delegated to the biogo FASTA reader
// (github.com/biogo/biogo/io/seqio/fasta) through a seqio.Scanner, using a
// linear DNA sequence as the template. This package adds the conventions
// the filters rely on:
//
//   - The record label is the full header line after ">", not just the
//     first word, because surveillance identifiers such as
//     "hCoV-19/Brazil/SP-01/2020|EPI_ISL_1|2020-03-01" are matched whole.
//   - Residues are kept byte-for-byte (case included); only ASCII
//     whitespace inside sequence lines is dropped.
//   - Blank lines and ";" comment lines before the first header are
//     skipped; any other text there is a *model.MalformedInputError with
//     its line number.
//
// Output records are written unwrapped: ">" + label + "\n" + residues + "\n".
package fasta
