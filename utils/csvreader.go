package utils

import (
	"bufio"
	"encoding/csv"
	"io"
)

const byteOrderMark = '\uFEFF'

// ParseCSV reads every record. A leading byte order mark, as written by
// spreadsheet exports, is dropped and leading spaces in fields are ignored.
func ParseCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if ch, _, err := br.ReadRune(); err == nil && ch != byteOrderMark {
		if err := br.UnreadRune(); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(br)
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}
