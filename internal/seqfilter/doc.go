// Package seqfilter keeps, removes or renames labelled sequences.
//
// All three operations walk the input once in file order and emit records
// with upper-cased residues. Only ASCII letters change case; every other
// byte passes through untouched. Problems with individual records (labels
// missing from the rename list, collisions, repeated labels) never fail
// the operation. They are collected on the Result for the final report.
//
// Keep and Remove applied with the same target set partition the
// deduplicated input: every label lands in exactly one of the two outputs.
package seqfilter
