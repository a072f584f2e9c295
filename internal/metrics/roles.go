package metrics

import (
	"log/slog"
	"path/filepath"
	"strings"

	"bikpis/internal/dataprocessing"
)

// Category is the kind of report a file holds, inferred from its name
type Category int

const (
	CategoryVoice Category = iota
	CategoryInteractions
)

func (c Category) String() string {
	switch c {
	case CategoryVoice:
		return "voice"
	case CategoryInteractions:
		return "interactions"
	default:
		return "unknown"
	}
}

// Operation is one calculation applied to every column matching Vocabulary
type Operation struct {
	Name       string
	Vocabulary []string
	Apply      func(table *dataprocessing.Table, column string, logger *slog.Logger) bool
}

var (
	voiceVocabulary        = []string{"tempo", "duracao", "tme", "tmt", "time"}
	interactionsVocabulary = []string{"ani", "marca", "identificador", "cliente"}
)

var operations = map[Category][]Operation{
	CategoryVoice: {
		{Name: "average_time", Vocabulary: voiceVocabulary, Apply: AverageTime},
	},
	CategoryInteractions: {
		{Name: "repeats", Vocabulary: interactionsVocabulary, Apply: Repeats},
	},
}

var derivedSuffixes = []string{
	SuffixSeconds, SuffixAverageClock, SuffixAverageValue,
	SuffixOccurrences, SuffixIsRepeat, SuffixRepeatGroups, SuffixSingletons,
}

// Operations returns the operations run for a category
func Operations(c Category) []Operation {
	return operations[c]
}

// Classify returns the categories of a file from its base name. Matching is
// case-insensitive; a name may belong to both categories or to none.
func Classify(filename string) []Category {
	name := strings.ToLower(filepath.Base(filename))

	var categories []Category
	if strings.Contains(name, "voz") {
		categories = append(categories, CategoryVoice)
	}
	if strings.Contains(name, "intera") || strings.Contains(name, "todas as filas") {
		categories = append(categories, CategoryInteractions)
	}
	return categories
}

// SelectColumns returns, in table order and without repeats, the columns
// whose lowercased name contains any vocabulary word. Columns produced by an
// earlier enrichment of a column still in the table are skipped.
func SelectColumns(columns []string, vocabulary []string) []string {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	seen := make(map[string]struct{})
	var selected []string
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			continue
		}
		if isDerived(c, present) || !matchesAny(strings.ToLower(c), vocabulary) {
			continue
		}
		seen[c] = struct{}{}
		selected = append(selected, c)
	}
	return selected
}

func matchesAny(name string, vocabulary []string) bool {
	for _, word := range vocabulary {
		if strings.Contains(name, word) {
			return true
		}
	}
	return false
}

func isDerived(column string, present map[string]struct{}) bool {
	for _, suffix := range derivedSuffixes {
		base, ok := strings.CutSuffix(column, suffix)
		if !ok || base == "" {
			continue
		}
		if _, exists := present[base]; exists {
			return true
		}
	}
	return false
}

// Applied records one operation run on one column
type Applied struct {
	Category  Category
	Operation string
	Column    string
}

// Apply runs every operation of every category of filename over table. The
// columns for each operation are selected from a snapshot taken before that
// operation runs, so columns it adds are never fed back into it.
func Apply(table *dataprocessing.Table, filename string, logger *slog.Logger) []Applied {
	var applied []Applied
	for _, category := range Classify(filename) {
		for _, op := range operations[category] {
			columns := SelectColumns(append([]string(nil), table.Columns...), op.Vocabulary)
			for _, column := range columns {
				if op.Apply(table, column, logger) {
					applied = append(applied, Applied{Category: category, Operation: op.Name, Column: column})
				}
			}
		}
	}
	return applied
}
