// Package fastp builds and executes invocations of the external FASTQ
// processing engine and parses its JSON metrics output.
//
// The engine is treated as a black box behind the [Engine] interface: it
// accepts a flat argument list naming an input/output file pair, exits
// with a status code, and optionally writes a JSON metrics file and an
// HTML report. Any engine satisfying that contract is substitutable;
// tests use in-process stubs.
package fastp
