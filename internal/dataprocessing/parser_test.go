package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bikpis/internal/errors"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		line     string
		expected rune
	}{
		{"a,b,c", ','},
		{"a;b;c", ';'},
		{"a\tb\tc", '\t'},
		{"a;b,c", ','},
		{"a\tb;c", ';'},
		{"single", ','},
		{"", ','},
	}

	for _, tt := range tests {
		t.Run(DelimiterName(tt.expected)+"_"+tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectDelimiter(tt.line))
		})
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name      string
		raw       []byte
		opts      ReadOptions
		columns   []string
		rows      [][]string
		delimiter rune
		encoding  string
	}{
		{
			name:      "comma with BOM",
			raw:       []byte("\xEF\xBB\xBFnome,tempo\nAna,00:01:00\n"),
			columns:   []string{"nome", "tempo"},
			rows:      [][]string{{"Ana", "00:01:00"}},
			delimiter: ',',
			encoding:  EncodingUTF8,
		},
		{
			name:      "semicolon detected",
			raw:       []byte("nome;fila\nAna;Suporte\nBia;Vendas\n"),
			columns:   []string{"nome", "fila"},
			rows:      [][]string{{"Ana", "Suporte"}, {"Bia", "Vendas"}},
			delimiter: ';',
			encoding:  EncodingUTF8,
		},
		{
			name:      "forced delimiter ignores first line",
			raw:       []byte("a;b,c\n1;2,3\n"),
			opts:      ReadOptions{Delimiter: ','},
			columns:   []string{"a;b", "c"},
			rows:      [][]string{{"1;2", "3"}},
			delimiter: ',',
			encoding:  EncodingUTF8,
		},
		{
			name:      "latin-1 fallback",
			raw:       []byte("descri\xe7\xe3o\nGest\xe3o\n"),
			opts:      ReadOptions{Latin1Fallback: true},
			columns:   []string{"descrição"},
			rows:      [][]string{{"Gestão"}},
			delimiter: ',',
			encoding:  EncodingLatin1,
		},
		{
			name:      "ragged rows are fitted to header",
			raw:       []byte("a,b,c\n1\n1,2,3,4\n"),
			columns:   []string{"a", "b", "c"},
			rows:      [][]string{{"1", "", ""}, {"1", "2", "3"}},
			delimiter: ',',
			encoding:  EncodingUTF8,
		},
		{
			name:      "quoted fields and blank lines",
			raw:       []byte("a,b\n\"x, y\",\"say \"\"hi\"\"\"\n\n2,\n"),
			columns:   []string{"a", "b"},
			rows:      [][]string{{"x, y", `say "hi"`}, {"2", ""}},
			delimiter: ',',
			encoding:  EncodingUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, src, err := ParseCSV(tt.raw, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.columns, table.Columns)
			assert.Equal(t, tt.rows, table.Rows)
			assert.Equal(t, tt.delimiter, src.Delimiter)
			assert.Equal(t, tt.encoding, src.Encoding)
		})
	}
}

func TestParseCSV_Errors(t *testing.T) {
	_, _, err := ParseCSV([]byte("descri\xe7\xe3o\n"), ReadOptions{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))

	_, _, err = ParseCSV([]byte(""), ReadOptions{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
}

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Base - Texto.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n1\t2\n"), 0644))

	table, src, err := ReadCSV(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, '\t', src.Delimiter)
	assert.Equal(t, []string{"a", "b"}, table.Columns)
	assert.Equal(t, 1, table.Len())

	_, _, err = ReadCSV(filepath.Join(dir, "missing.csv"), ReadOptions{})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
	assert.Equal(t, filepath.Join(dir, "missing.csv"), appErr.Context["file"])
}
