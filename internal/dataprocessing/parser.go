package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	apperrors "bikpis/internal/errors"
)

// Encodings a CSV file may be decoded with
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidateDelimiters are tried in order against the first line
var candidateDelimiters = []rune{',', ';', '\t'}

// ReadOptions configures how a CSV file is decoded
type ReadOptions struct {
	// Delimiter forces the field separator; zero detects it from the first line.
	Delimiter rune
	// Latin1Fallback retries the file as Latin-1 when it is not valid UTF-8.
	Latin1Fallback bool
}

// Source describes how a file was decoded
type Source struct {
	Delimiter rune
	Encoding  string
}

// ReadCSV reads a CSV file into a Table. A leading UTF-8 byte-order mark is
// ignored. The first record is the header.
func ReadCSV(path string, opts ReadOptions) (*Table, Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Source{}, apperrors.NewParsingError("failed to read file", err).WithContext("file", path)
	}

	table, src, err := ParseCSV(raw, opts)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return nil, src, appErr.WithContext("file", path)
		}
		return nil, src, err
	}
	return table, src, nil
}

// ParseCSV decodes raw CSV bytes into a Table
func ParseCSV(raw []byte, opts ReadOptions) (*Table, Source, error) {
	src := Source{Encoding: EncodingUTF8}

	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		if !opts.Latin1Fallback {
			return nil, src, apperrors.NewParsingError("file is not valid UTF-8", nil)
		}
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, src, apperrors.NewParsingError("failed to decode latin-1", err)
		}
		raw = decoded
		src.Encoding = EncodingLatin1
	}

	src.Delimiter = opts.Delimiter
	if src.Delimiter == 0 {
		src.Delimiter = DetectDelimiter(firstLine(raw))
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = src.Delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, src, apperrors.NewParsingError("failed to parse csv", err)
	}
	if len(records) == 0 {
		return nil, src, apperrors.NewParsingError("no columns to parse from file", nil)
	}

	return NewTable(records[0], records[1:]), src, nil
}

// DetectDelimiter returns the first of ',', ';' and tab found in line,
// defaulting to ','.
func DetectDelimiter(line string) rune {
	for _, sep := range candidateDelimiters {
		if strings.ContainsRune(line, sep) {
			return sep
		}
	}
	return ','
}

func firstLine(raw []byte) string {
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[:i]
	}
	return string(raw)
}

// DelimiterName is used in log attributes
func DelimiterName(r rune) string {
	switch r {
	case '\t':
		return "tab"
	case 0:
		return "none"
	default:
		return fmt.Sprintf("%c", r)
	}
}
