package postgres

import (
	"fmt"
	"strings"

	"github.com/upb/healthedu-backend/models"
)

// buildContentListQuery appends equality filters on category and language to
// a base SELECT and orders the result newest first.
func buildContentListQuery(base string, filter models.ContentFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Language != nil {
		args = append(args, *filter.Language)
		conditions = append(conditions, fmt.Sprintf("language = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString(base)
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id")

	return b.String(), args
}
