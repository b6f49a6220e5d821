// Package pipeline orchestrates the batch: FASTQ discovery, per-sample
// engine invocations with bounded concurrency, outcome aggregation, and
// the summary report.
//
// One Outcome is produced per discovered file, in discovery order,
// regardless of scheduling; a sample failure is recorded and the batch
// continues. Only configuration errors, an empty discovery, or a missing
// engine abort a run.
package pipeline
