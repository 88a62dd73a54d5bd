package authturso

import (
	"fmt"
	"time"
)

// timeLayout is the stored timestamp form: UTC, millisecond precision,
// lexicographically sortable.
const timeLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// mapRows zips the column-name list with each row's values, producing one
// keyed map per row. An empty result produces an empty slice.
func mapRows(rs *ResultSet) []map[string]any {
	out := make([]map[string]any, 0, len(rs.Rows))
	for _, values := range rs.Rows {
		row := make(map[string]any, len(rs.Columns))
		for i, column := range rs.Columns {
			row[column] = values[i]
		}
		out = append(out, row)
	}
	return out
}

// mapOneRow is the single-row form of mapRows: the first row as a keyed map,
// or nil when the result is empty. Callers that expect at most one row use
// this instead of indexing into mapRows.
func mapOneRow(rs *ResultSet) map[string]any {
	rows := mapRows(rs)
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// serializeTime rewrites a native timestamp argument in row to its stored
// text form. A nil or absent value becomes an explicit nil so optional
// timestamps bind as NULL instead of crashing the serializer.
func serializeTime(row map[string]any, column string) map[string]any {
	switch v := row[column].(type) {
	case time.Time:
		row[column] = formatTime(v)
	case *time.Time:
		if v != nil {
			row[column] = formatTime(*v)
			break
		}
		row[column] = nil
	default:
		row[column] = nil
	}
	return row
}

// deserializeTime parses a stored timestamp column in row back to a native
// time.Time. A nil or absent value stays nil; a present but unparseable
// value is a MalformedTimestampError.
func deserializeTime(row map[string]any, column string) (map[string]any, error) {
	v, ok := row[column]
	if !ok || v == nil {
		return row, nil
	}

	var text string
	switch t := v.(type) {
	case string:
		text = t
	case []byte:
		text = string(t)
	case time.Time:
		return row, nil
	default:
		return row, &MalformedTimestampError{Column: column, Value: fmt.Sprint(v)}
	}

	parsed, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return row, &MalformedTimestampError{Column: column, Value: text, Err: err}
	}

	row[column] = parsed
	return row, nil
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return ""
}

func textPtr(v any) *string {
	if v == nil {
		return nil
	}
	s := text(v)
	return &s
}

func int64Ptr(v any) *int64 {
	if v == nil {
		return nil
	}
	if n, ok := v.(int64); ok {
		return &n
	}
	return nil
}

func timeValue(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return time.Time{}
}

func timePtr(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}
	return nil
}
