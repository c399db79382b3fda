package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfWeek(t *testing.T) {
	zurich := time.FixedZone("CET", 3600)
	monday := time.Date(2024, 1, 8, 0, 0, 0, 0, zurich)

	tests := []struct {
		name string
		in   time.Time
	}{
		{name: "Monday morning", in: time.Date(2024, 1, 8, 9, 30, 0, 0, zurich)},
		{name: "Wednesday", in: time.Date(2024, 1, 10, 12, 0, 0, 0, zurich)},
		{name: "Sunday night", in: time.Date(2024, 1, 14, 23, 59, 0, 0, zurich)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, monday, StartOfWeek(tt.in))
		})
	}

	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, zurich), StartOfDay(time.Date(2024, 1, 10, 12, 0, 0, 0, zurich)))
}

func TestParseISOTime(t *testing.T) {
	got, err := ParseISOTime("2024-01-08T09:00:00+01:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC), got.UTC())

	got, err = ParseISOTime("2024-01-08 09:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), *got)

	_, err = ParseISOTime("")
	assert.Error(t, err)
	_, err = ParseISOTime("not a time")
	assert.Error(t, err)
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.Local, LoadLocation(""))
	assert.Equal(t, time.Local, LoadLocation("Not/AZone"))
	assert.Equal(t, "UTC", LoadLocation("UTC").String())
}

func TestSliceHelpers(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{2, 4}, Filter(nums, func(n int) bool { return n%2 == 0 }))
	assert.Equal(t, []string{"1", "2"}, Map(nums[:2], func(n int) string { return string(rune('0' + n)) }))
	assert.Equal(t, 3, *Find(nums, func(n int) bool { return n > 2 }))
	assert.Nil(t, Find(nums, func(n int) bool { return n > 5 }))
	assert.Equal(t, map[bool][]int{true: {2, 4}, false: {1, 3, 5}}, GroupBy(nums, func(n int) bool { return n%2 == 0 }))
	assert.Equal(t, 7, *Ptr(7))
	assert.Equal(t, time.UTC, MustParseDate("2024-01-08").Location())
}
