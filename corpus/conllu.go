// Package corpus reads CoNLL-U treebank files. Only the FORM and UPOS
// columns are consumed; the other eight are validated for presence and
// discarded. See https://universaldependencies.org/format.html
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	fieldSeparator = "\t"
	numFields      = 10
)

// Row is a single token row of a CoNLL-U sentence.
type Row struct {
	ID   string
	Form string
	UPos string
}

// isSkippableID reports whether the row is a multiword-token range
// (e.g. "1-2") or an empty node (e.g. "5.1"); neither carries a UPOS
// observation of its own.
func isSkippableID(id string) bool {
	return strings.ContainsAny(id, "-.")
}

// ReadCoNLLU parses sentences separated by blank lines. Comment lines
// start with '#'. A malformed row (wrong field count or empty FORM/UPOS)
// is a contract violation and surfaces as an error.
func ReadCoNLLU(r io.Reader) ([][]Row, error) {
	var sentences [][]Row
	var current []Row

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				sentences = append(sentences, current)
				current = nil
			}
			continue
		}

		fields := strings.Split(line, fieldSeparator)
		if len(fields) != numFields {
			return nil, fmt.Errorf("conllu: line %d: got %d fields, expected %d", lineNum, len(fields), numFields)
		}

		row := Row{ID: fields[0], Form: fields[1], UPos: fields[3]}
		if isSkippableID(row.ID) {
			continue
		}
		if row.Form == "" || row.UPos == "" {
			return nil, fmt.Errorf("conllu: line %d: empty FORM or UPOS", lineNum)
		}
		current = append(current, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(current) > 0 {
		sentences = append(sentences, current)
	}

	return sentences, nil
}

func ReadCoNLLUFile(path string) ([][]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCoNLLU(file)
}
