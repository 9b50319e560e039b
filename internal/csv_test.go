package internal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		input := "id,name,city\n1,corner shop,aberystwyth\n2,bakery,cardiff\n"

		header, records, err := ReadRecords(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name", "city"}, header)
		require.Len(t, records, 2)
		assert.Equal(t, []any{"1", "corner shop", "aberystwyth"}, records[0].Values())
		assert.Equal(t, map[string]any{
			"id":   "2",
			"name": "bakery",
			"city": "cardiff",
		}, records[1].Map())
	})

	t.Run("header only", func(t *testing.T) {
		header, records, err := ReadRecords(strings.NewReader("id,name\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name"}, header)
		assert.Empty(t, records)
	})

	t.Run("quoted fields with commas", func(t *testing.T) {
		input := "id,address\n1,\"12 High Street, Aberystwyth\"\n"

		_, records, err := ReadRecords(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []any{"1", "12 High Street, Aberystwyth"}, records[0].Values())
	})

	t.Run("empty file is malformed", func(t *testing.T) {
		_, _, err := ReadRecords(strings.NewReader(""))
		assert.True(t, errors.Is(err, ErrMalformedCSV))
	})

	t.Run("ragged row is malformed", func(t *testing.T) {
		input := "id,name,city\n1,corner shop\n"

		_, _, err := ReadRecords(strings.NewReader(input))
		assert.True(t, errors.Is(err, ErrMalformedCSV))
	})
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "shops", TableName("/data/imports/shops.csv"))
	assert.Equal(t, "Consumer Complaints", TableName("Consumer Complaints.csv"))
	assert.Equal(t, "shops", TableName("shops"))
}
