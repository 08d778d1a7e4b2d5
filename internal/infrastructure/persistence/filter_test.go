package persistence

import (
	"testing"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name     string
		filter   shared.Filter
		def      string
		expected string
	}{
		{
			name:     "empty filter falls back to default",
			filter:   shared.Filter{},
			def:      "code ASC",
			expected: "code ASC",
		},
		{
			name:     "column with explicit direction",
			filter:   shared.Filter{OrderBy: "sale_date", OrderDir: "desc"},
			def:      "code ASC",
			expected: "sale_date DESC",
		},
		{
			name:     "direction defaults to ascending",
			filter:   shared.Filter{OrderBy: "name"},
			def:      "code ASC",
			expected: "name ASC",
		},
		{
			name:     "injection attempt falls back to default",
			filter:   shared.Filter{OrderBy: "name; DROP TABLE products--"},
			def:      "code ASC",
			expected: "code ASC",
		},
		{
			name:     "parenthesized expression rejected",
			filter:   shared.Filter{OrderBy: "(SELECT 1)"},
			def:      "sale_date DESC",
			expected: "sale_date DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, orderClause(tt.filter, tt.def))
		})
	}
}
