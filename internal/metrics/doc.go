// Package metrics enriches exported CSV tables with contact-center KPIs.
//
// Two calculations are available. AverageTime derives the TME/TMT columns
// (mean handling time over rows longer than five seconds) from a duration
// column. Repeats derives repeat-contact columns from an identifier column.
//
// Which calculations run is decided by the file name: Classify maps a name to
// its categories and every category has a fixed list of operations, each
// with the column vocabulary it applies to.
package metrics
