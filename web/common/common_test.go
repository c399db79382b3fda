package common

import (
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	var body struct {
		From DateOnly `json:"from"`
		To   DateOnly `json:"to"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"from":"2024-01-01","to":""}`), &body))

	assert.True(t, body.To.IsZero())
	zurich := time.FixedZone("CET", 3600)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, zurich), body.From.In(zurich))

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"2024-01-01","to":""}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"from":"01/02/2024"}`), &body))
}

func TestErrorResponseOmitsEmptyCode(t *testing.T) {
	out, err := json.Marshal(NewErrorResponse("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"boom"}`, string(out))

	out, err = json.Marshal(NewCodedErrorResponse("NotClockedIn", "not clocked in"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"not clocked in","code":"NotClockedIn"}`, string(out))
}

func TestFormatBindingError(t *testing.T) {
	type clockBody struct {
		EmployeeID int    `json:"employeeId" binding:"required,min=1"`
		Username   string `json:"username" binding:"max=5"`
	}

	validate := func(body clockBody) error {
		return binding.Validator.ValidateStruct(&body)
	}
	unmarshal := func(raw string) error {
		var body clockBody
		return json.Unmarshal([]byte(raw), &body)
	}

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Nil", err: nil, expected: ""},
		{name: "Empty body", err: io.EOF, expected: "Request body is empty"},
		{name: "Syntax", err: unmarshal(`{"employeeId":`), expected: "Invalid JSON at byte offset 14"},
		{name: "Type", err: unmarshal(`{"employeeId":"one"}`), expected: "Field 'employeeId' should be of type int"},
		{name: "Required", err: validate(clockBody{}), expected: "Field 'employeeId' is required"},
		{name: "Negative id", err: validate(clockBody{EmployeeID: -2}), expected: "Field 'employeeId' must be a positive employee id"},
		{name: "Too long", err: validate(clockBody{EmployeeID: 1, Username: strings.Repeat("a", 6)}), expected: "Field 'username' must be at most 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBindingError(tt.err))
		})
	}
}

func TestNewSearchResponse(t *testing.T) {
	items := []int{5, 4, 3, 2, 1}

	tests := []struct {
		name     string
		items    []int
		take     int
		skip     int
		expected []int
	}{
		{name: "All", items: items, expected: items},
		{name: "First page", items: items, take: 2, expected: []int{5, 4}},
		{name: "Second page", items: items, take: 2, skip: 2, expected: []int{3, 2}},
		{name: "Past the end", items: items, take: 2, skip: 9, expected: []int{}},
		{name: "Nothing", items: nil, expected: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewSearchResponse(tt.items, tt.take, tt.skip)
			assert.Equal(t, tt.expected, res.Data)
			assert.Equal(t, int64(len(tt.items)), res.Pagination.Total)
		})
	}

	out, err := json.Marshal(NewSearchResponse([]int(nil), 0, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"pagination":{"total":0}}`, string(out))
}
