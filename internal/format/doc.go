// Package format holds the presentation helpers shared by the CLI and the
// dashboard: durations, ETAs, progress bars and digit grouping.
package format
