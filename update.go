package authturso

import "strings"

// assignment is one column to write in a partial update, with its bind value
// already serialized. A nil value clears the column.
type assignment struct {
	column string
	value  any
}

// updateFragment builds the `col = :col, ...` fragment of a partial UPDATE
// together with its named bind arguments. Column order follows the order of
// assigns. Columns named in exclude are never emitted, even when present, so
// key columns used in the WHERE clause cannot end up in the SET list. When
// nothing remains to set, the result is ErrEmptyUpdate and no statement
// should be issued.
func updateFragment(assigns []assignment, exclude ...string) (string, map[string]any, error) {
	skip := make(map[string]bool, len(exclude))
	for _, column := range exclude {
		skip[column] = true
	}

	var fragment strings.Builder
	args := make(map[string]any, len(assigns))
	for _, a := range assigns {
		if skip[a.column] {
			continue
		}
		if len(args) > 0 {
			fragment.WriteString(", ")
		}
		fragment.WriteString(a.column)
		fragment.WriteString(" = :")
		fragment.WriteString(a.column)
		args[a.column] = a.value
	}

	if len(args) == 0 {
		return "", nil, ErrEmptyUpdate
	}

	return fragment.String(), args, nil
}
