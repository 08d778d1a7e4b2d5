package persistence

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pos/backend/internal/domain/shared"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// orderClause builds an ORDER BY clause from the filter, falling back to def when
// the filter does not name a column. Column names are whitelisted to identifiers
// so filter input can never reach the SQL as anything but a column name.
func orderClause(filter shared.Filter, def string) string {
	if filter.OrderBy == "" || !identifierPattern.MatchString(filter.OrderBy) {
		return def
	}
	dir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", filter.OrderBy, dir)
}
