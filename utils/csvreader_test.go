package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	csvData := `employeeId,clockIn,clockOut
1,2024-01-08T09:00:00Z,2024-01-08T17:00:00Z
2,2024-01-08T10:00:00Z,`

	got, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"employeeId", "clockIn", "clockOut"},
		{"1", "2024-01-08T09:00:00Z", "2024-01-08T17:00:00Z"},
		{"2", "2024-01-08T10:00:00Z", ""},
	}, got)

	_, err = ParseCSV(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)
}

func TestParseCSVSpreadsheetExport(t *testing.T) {
	got, err := ParseCSV(strings.NewReader("\uFEFFID, EmployeeID\n1,  2\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ID", "EmployeeID"}, {"1", "2"}}, got)

	got, err = ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
