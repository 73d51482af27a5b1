// Package parsing ingests heterogeneous analytics export files and
// reconciles them into normalized row collections.
//
// # Pipeline
//
// Raw file bytes become a grid of string cells (excelize for workbooks,
// encoding/csv for delimited text). The Detector locates the header row and
// classifies each sheet's kind by keyword overlap; the Normalizer then maps
// every data row onto the canonical record shapes, using the numeric/date
// parsers, the activity identifier decoder, the text fingerprinter and the
// content classifier.
//
// # Usage
//
//	parser := parsing.NewParser(logger, parsing.DefaultLimits())
//	result := parser.ParseFiles(files)
//
// The result always holds the aggregated rows of every file that parsed;
// per-file failures are collected in result.Failures rather than aborting
// the batch.
package parsing
