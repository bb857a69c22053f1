// Package exporter writes pipeline outputs as CSV files. Marshaling is
// typed: record structs carry csv tags and go through gocsv, so the
// header row and column order are fixed by the type, not by the caller.
package exporter
