// Package dataset reads and writes dense numeric tables as delimited text.
//
// The format is the one produced by common spreadsheet exports: an optional
// header row followed by data rows, all with the same number of fields.
// Every data field must parse as a finite float64.
//
// Files whose name ends in .zst, .lz4 or .gz are transparently
// (de)compressed by Decompress and Compress.
package dataset
