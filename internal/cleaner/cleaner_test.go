package cleaner

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikpis/internal/dataprocessing"
	apperrors "bikpis/internal/errors"
	"bikpis/internal/infrastructure"
)

const bom = "\xEF\xBB\xBF"

func newTestCleaner() (*Cleaner, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(slog.New(infrastructure.NewLineHandler(&buf, slog.LevelDebug))), &buf
}

func TestClean(t *testing.T) {
	table := dataprocessing.NewTable(
		[]string{" Nome Cliente ", "Fila", "Vazia"},
		[][]string{
			{"Ana 😀", "Suporte", ""},
			{"Ana 😀", "Suporte", ""},
			{"José", "Vendas", ""},
		},
	)

	droppedColumns, droppedRows := Clean(table)

	assert.Equal(t, 1, droppedColumns)
	assert.Equal(t, 1, droppedRows)
	assert.Equal(t, []string{"nome_cliente", "fila"}, table.Columns)
	assert.Equal(t, [][]string{{"Ana ", "Suporte"}, {"José", "Vendas"}}, table.Rows)

	droppedColumns, droppedRows = Clean(table)
	assert.Zero(t, droppedColumns)
	assert.Zero(t, droppedRows)
}

func TestCleaner_ProcessFile(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
		encoding string
	}{
		{
			name:     "semicolon latin-1",
			input:    []byte("Descri\xe7\xe3o;Fila ;Vazia\nGest\xe3o;N1;\nGest\xe3o;N1;\nEntrega;N2;\n"),
			expected: bom + "descrição,fila\nGestão,N1\nEntrega,N2\n",
			encoding: "latin-1",
		},
		{
			name:     "tab separated with BOM",
			input:    []byte(bom + "Tempo Espera\tANI\n00:01:00\t5511\n"),
			expected: bom + "tempo_espera,ani\n00:01:00,5511\n",
			encoding: "utf-8",
		},
		{
			name:     "all empty column dropped",
			input:    []byte("a,b\n1,\n2,\n"),
			expected: bom + "a\n1\n2\n",
			encoding: "utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Base.csv")
			require.NoError(t, os.WriteFile(path, tt.input, 0644))

			cleaner, logs := newTestCleaner()
			require.NoError(t, cleaner.ProcessFile(context.Background(), path))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(content))
			assert.Contains(t, logs.String(), "INFO:File processed file=Base.csv")
			assert.Contains(t, logs.String(), "encoding="+tt.encoding)
		})
	}
}

func TestCleaner_ProcessFile_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Base - Voz.csv")
	input := "Nome Cliente;Fila;Obs\nAna ™;Suporte;\"x; y\"\nAna ™;Suporte;\"x; y\"\nJosé;Vendas;\n"
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	cleaner, _ := newTestCleaner()
	require.NoError(t, cleaner.ProcessFile(context.Background(), path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, cleaner.ProcessFile(context.Background(), path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, bom+"nome_cliente,fila,obs\nAna ,Suporte,x; y\nJosé,Vendas,\n", string(first))
}

func TestCleaner_ProcessFile_ReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cleaner, logs := newTestCleaner()
	err := cleaner.ProcessFile(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
	assert.Contains(t, logs.String(), "ERROR:Failed to read file file=empty.csv")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestCleaner_Name(t *testing.T) {
	cleaner, _ := newTestCleaner()
	assert.Equal(t, "cleaner", cleaner.Name())
}
