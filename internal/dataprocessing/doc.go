// Package dataprocessing holds the in-memory table shared by the converter,
// cleaner and metrics tools, and the CSV decoding rules they agree on.
//
// # Reading
//
// ReadCSV detects the separator from the first line (',' then ';' then tab),
// ignores a UTF-8 byte-order mark and, when asked to, falls back to Latin-1
// for files that are not valid UTF-8:
//
//	table, src, err := dataprocessing.ReadCSV("Base - Voz.csv", dataprocessing.ReadOptions{
//	    Latin1Fallback: true,
//	})
//
// # Missing values
//
// Cells are kept as strings. An empty cell is the missing value: it is
// skipped by MapCells, counts as empty for DropEmptyColumns and is written
// back as an empty field.
package dataprocessing
