package metrics

import (
	"log/slog"

	"bikpis/internal/dataprocessing"
)

// Column suffixes written by AverageTime
const (
	SuffixSeconds      = "_segundos"
	SuffixAverageClock = "_tme_tmt"
	SuffixAverageValue = "_media_segundos"
)

// Column suffixes written by Repeats
const (
	SuffixOccurrences  = "_qtd_ocorrencias"
	SuffixIsRepeat     = "_eh_rechamada"
	SuffixRepeatGroups = "_qtd_rechamadas_total"
	SuffixSingletons   = "_qtd_clientes_unicos"
)

// MinValidSeconds is the duration a row must exceed to count toward the mean
const MinValidSeconds = 5

// AverageTime adds the per-row seconds of column plus the file-level mean of
// the rows longer than MinValidSeconds, as HH:MM:SS and as seconds. It
// reports whether the column existed; a missing column is logged once and
// the table is left unchanged.
func AverageTime(table *dataprocessing.Table, column string, logger *slog.Logger) bool {
	values := table.Column(column)
	if values == nil {
		logger.Warn("Column not found", slog.String("column", column), slog.String("metric", "average_time"))
		return false
	}

	seconds := make([]string, len(values))
	var sum float64
	var count int
	for i, v := range values {
		s, ok := ToSeconds(v)
		if !ok {
			continue
		}
		seconds[i] = dataprocessing.FormatFloat(s)
		if s > MinValidSeconds {
			sum += s
			count++
		}
	}
	table.SetColumn(column+SuffixSeconds, seconds)

	if count == 0 {
		table.Broadcast(column+SuffixAverageClock, "00:00:00")
		table.Broadcast(column+SuffixAverageValue, "0")
		return true
	}

	mean := sum / float64(count)
	table.Broadcast(column+SuffixAverageClock, FormatClock(mean))
	table.Broadcast(column+SuffixAverageValue, dataprocessing.FormatFloat(mean))
	return true
}

// RepeatStats summarizes identifier occurrences in one column
type RepeatStats struct {
	Counts       map[string]int
	RepeatGroups int
	Singletons   int
}

// CountRepeats counts how often each present identifier occurs
func CountRepeats(values []string) RepeatStats {
	stats := RepeatStats{Counts: make(map[string]int)}
	for _, v := range values {
		if v == "" {
			continue
		}
		stats.Counts[v]++
	}
	for _, n := range stats.Counts {
		if n > 1 {
			stats.RepeatGroups++
		} else {
			stats.Singletons++
		}
	}
	return stats
}

// Repeats adds per-row occurrence counts and repeat flags for the identifier
// column, plus the file-level number of repeated and single-contact
// identifiers. Rows without an identifier get an empty count and False. It
// reports whether the column existed; a missing column is logged once and
// the table is left unchanged.
func Repeats(table *dataprocessing.Table, column string, logger *slog.Logger) bool {
	values := table.Column(column)
	if values == nil {
		logger.Warn("Column not found", slog.String("column", column), slog.String("metric", "repeats"))
		return false
	}

	stats := CountRepeats(values)

	occurrences := make([]string, len(values))
	isRepeat := make([]string, len(values))
	for i, v := range values {
		n := stats.Counts[v]
		if v != "" {
			occurrences[i] = dataprocessing.FormatInt(n)
		}
		isRepeat[i] = dataprocessing.FormatBool(n > 1)
	}

	table.SetColumn(column+SuffixOccurrences, occurrences)
	table.SetColumn(column+SuffixIsRepeat, isRepeat)
	table.Broadcast(column+SuffixRepeatGroups, dataprocessing.FormatInt(stats.RepeatGroups))
	table.Broadcast(column+SuffixSingletons, dataprocessing.FormatInt(stats.Singletons))
	return true
}
