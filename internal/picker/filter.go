package picker

import (
	"strings"

	"github.com/internal-tools/org-activity-reports/internal/models"
)

// FilterMembers returns the members whose ldap or full name contains the
// query, case-insensitively. An empty query passes everything through.
func FilterMembers(members []models.Member, query string) []models.Member {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return members
	}

	filtered := make([]models.Member, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.LDAP), query) ||
			strings.Contains(strings.ToLower(m.FullName), query) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
