package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/types"
)

func record(fields ...string) types.Record {
	r := types.Record{}
	for i := 0; i+1 < len(fields); i += 2 {
		r.Fields = append(r.Fields, types.Field{Name: fields[i], Value: fields[i+1]})
	}
	return r
}

func TestCollectHeaders(t *testing.T) {
	tests := []struct {
		name    string
		records []types.Record
		want    []string
	}{
		{
			name:    "no records",
			records: nil,
			want:    []string{},
		},
		{
			name:    "records without fields",
			records: []types.Record{record(), record()},
			want:    []string{},
		},
		{
			name: "first occurrence order across records",
			records: []types.Record{
				record("Id", "1", "Status", "Open"),
				record("Id", "2", "Owner", "bob", "Status", "Closed"),
			},
			want: []string{"Id", "Status", "Owner"},
		},
		{
			name: "field only in the last record still gets a column",
			records: []types.Record{
				record("Id", "1"),
				record("Id", "2"),
				record("Id", "3", "Late", "x"),
			},
			want: []string{"Id", "Late"},
		},
		{
			name:    "repeated field within one record appears once",
			records: []types.Record{record("Status", "a", "Status", "b")},
			want:    []string{"Status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollectHeaders(tt.records))
		})
	}
}

func TestProjectRow(t *testing.T) {
	headers := []string{"Id", "Status", "Owner"}

	tests := []struct {
		name   string
		record types.Record
		want   []string
	}{
		{"all present", record("Id", "1", "Status", "Open", "Owner", "ann"), []string{"1", "Open", "ann"}},
		{"missing fields are empty", record("Id", "2"), []string{"2", "", ""}},
		{"field order does not matter", record("Owner", "x", "Id", "3"), []string{"3", "", "x"}},
		{"last write wins", record("Status", "first", "Status", "second"), []string{"", "second", ""}},
		{"empty value stays empty", record("Id", ""), []string{"", "", ""}},
		{"no fields", record(), []string{"", "", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := ProjectRow(tt.record, headers)
			assert.Len(t, row, len(headers))
			assert.Equal(t, tt.want, row)
		})
	}
}

func TestBuildTable(t *testing.T) {
	records := []types.Record{
		record("Id", "1", "Status", "Open"),
		record("Id", "2"),
	}

	table := BuildTable(records)

	assert.Equal(t, []string{"Id", "Status"}, table.Header)
	assert.Equal(t, [][]string{{"1", "Open"}, {"2", ""}}, table.Rows)
}

func TestBuildTable_RowAlignment(t *testing.T) {
	records := []types.Record{
		record("A", "1"),
		record("B", "2", "C", "3"),
		record("C", "4", "A", "5", "D", "6"),
		record(),
	}

	table := BuildTable(records)

	assert.Equal(t, []string{"A", "B", "C", "D"}, table.Header)
	for i, row := range table.Rows {
		assert.Len(t, row, len(table.Header), "row %d", i)
	}
	assert.Equal(t, []string{"5", "", "4", "6"}, table.Rows[2])
	assert.Equal(t, []string{"", "", "", ""}, table.Rows[3])
}
