// Package logging provides the diagnostic logger of the seqtree CLI.
//
// Diagnostics go to stderr through zerolog's console writer so that stdout
// stays reserved for progress lines, the run summary and --json output.
// The level is warn by default; --verbose lowers it to debug, which logs
// one event per kept, removed, renamed or pruned item.
package logging
