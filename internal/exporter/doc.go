// Package exporter writes tables back to disk.
//
// WriteCSV produces the comma-separated, UTF-8 with byte-order mark files the
// Power BI refresh reads. WriteXLSX produces the single-sheet workbook twin,
// with numeric columns stored as numbers so they aggregate without a cast.
//
// Example usage:
//
//	table, _, err := dataprocessing.ReadCSV(path, dataprocessing.ReadOptions{Latin1Fallback: true})
//	if err != nil {
//		return err
//	}
//	if err := exporter.WriteXLSX(base+".xlsx", table); err != nil {
//		logger.Error("xlsx failed", slog.String("error", err.Error()))
//	}
//	if err := exporter.WriteCSV(base+"_utf8.csv", table, exporter.DefaultWriteOptions()); err != nil {
//		logger.Error("csv failed", slog.String("error", err.Error()))
//	}
package exporter
