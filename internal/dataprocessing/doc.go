// Package dataprocessing implements the exploration pipeline for the raw
// Brent price table.
//
// The package is organized into three parts:
//
// 1. Parser: LoadPrices reads a Date/Price table from CSV or XLSX, drops
// malformed rows and sorts by date.
// 2. Analytics: DescribePrices and LogReturns derive the descriptive
// statistics and the log-return series.
// 3. Events: LoadEvents reads the events table with an ordered list of
// strategies, standard first and permissive second.
//
// Explorer ties them together with the plot and workbook writers from
// package exporter:
//
//	explorer := dataprocessing.NewExplorer(opts, os.Stdout, logger)
//	report := explorer.Run(ctx)
//	if report.Halted {
//	    // price series unavailable; already reported on the console
//	}
//
// A price load failure halts the run without failing the process. Events
// that cannot be parsed by any strategy leave the run with no events.
package dataprocessing
