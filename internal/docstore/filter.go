package docstore

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Filter selects documents by field equality over their JSON representation.
// Keys are JSON field names of the collection's record shape; values are
// compared for equality, or for membership when wrapped with In. An empty
// filter matches every document in the collection.
type Filter map[string]any

// Patch assigns new values to the named JSON fields of a document. Fields
// absent from the patch are left untouched.
type Patch map[string]any

// In matches documents whose field equals any of the given values.
func In(values ...string) any {
	return inClause(values)
}

type inClause []string

// fieldKeyPattern restricts filter keys to plain JSON field names. Keys are
// interpolated into the json_extract path, so anything outside this shape is
// rejected before it reaches the SQL text.
var fieldKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// buildWhere compiles a filter into a WHERE clause scoped to one collection.
// Keys are sorted so the generated SQL is deterministic.
func buildWhere(collection string, filter Filter) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString("collection = ?")
	args := []any{collection}

	keys := make([]string, 0, len(filter))
	for key := range filter {
		if !fieldKeyPattern.MatchString(key) {
			return "", nil, fmt.Errorf("invalid filter key %q", key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field := fmt.Sprintf("json_extract(doc, '$.%s')", key)
		switch value := filter[key].(type) {
		case inClause:
			if len(value) == 0 {
				// Empty membership matches nothing.
				sb.WriteString(" AND 0 = 1")
				continue
			}
			sb.WriteString(" AND " + field + " IN (" + placeholders(len(value)) + ")")
			for _, v := range value {
				args = append(args, v)
			}
		default:
			sb.WriteString(" AND " + field + " = ?")
			args = append(args, value)
		}
	}
	return sb.String(), args, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
