package converter

import (
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/types"
)

// CollectHeaders returns the local field names of all records, deduplicated,
// in order of first occurrence (record order, then field order within a
// record). It must see every record before any row is written: a field that
// only appears in the last record still gets a column.
func CollectHeaders(records []types.Record) []string {
	headers := []string{}
	seen := make(map[string]struct{})

	for _, record := range records {
		for _, field := range record.Fields {
			if _, ok := seen[field.Name]; ok {
				continue
			}
			seen[field.Name] = struct{}{}
			headers = append(headers, field.Name)
		}
	}
	return headers
}

// ProjectRow aligns one record to the header list. When a field name repeats
// within the record, the last occurrence wins. Columns the record lacks are
// empty strings.
func ProjectRow(record types.Record, headers []string) []string {
	values := make(map[string]string, len(record.Fields))
	for _, field := range record.Fields {
		values[field.Name] = field.Value
	}

	row := make([]string, len(headers))
	for i, name := range headers {
		row[i] = values[name]
	}
	return row
}

// ProjectRows projects every record, keeping record order.
func ProjectRows(records []types.Record, headers []string) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, ProjectRow(record, headers))
	}
	return rows
}

// BuildTable runs both passes: header collection over all records, then
// row projection.
func BuildTable(records []types.Record) *types.Table {
	headers := CollectHeaders(records)
	return &types.Table{
		Header: headers,
		Rows:   ProjectRows(records, headers),
	}
}
