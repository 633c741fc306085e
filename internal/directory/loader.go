package directory

import (
	"sort"

	"github.com/internal-tools/org-activity-reports/internal/models"
)

// RawPayload is the nested mapping returned by the directory-lookup service:
// group label -> status label -> ldap -> display name.
type RawPayload map[string]map[string]map[string]string

// Normalize flattens a raw directory payload into Member records.
// Unrecognized group or status labels are skipped without error, and a
// malformed or absent payload yields an empty list. Terminated entries are
// excluded unless includeTerminated is set, even if present in the payload.
func Normalize(payload RawPayload, includeTerminated bool) []models.Member {
	members := []models.Member{}
	if payload == nil {
		return members
	}

	for groupLabel, statuses := range payload {
		group, ok := models.ParseGroupTag(groupLabel)
		if !ok {
			continue
		}
		for statusLabel, entries := range statuses {
			status, ok := models.ParseMemberStatus(statusLabel)
			if !ok {
				continue
			}
			terminated := status == models.StatusTerminated
			if terminated && !includeTerminated {
				continue
			}
			for ldap, displayName := range entries {
				if ldap == "" {
					continue
				}
				members = append(members, models.Member{
					ID:         ldap,
					LDAP:       ldap,
					FullName:   displayName,
					Group:      group,
					Terminated: terminated,
				})
			}
		}
	}

	sortMembers(members)
	return members
}

// sortMembers orders by canonical group order, then ldap. Map iteration order
// is random, so the loader pins a stable ordering for every caller.
func sortMembers(members []models.Member) {
	rank := map[models.GroupTag]int{}
	for i, g := range models.CanonicalGroups() {
		rank[g] = i
	}
	sort.Slice(members, func(i, j int) bool {
		if rank[members[i].Group] != rank[members[j].Group] {
			return rank[members[i].Group] < rank[members[j].Group]
		}
		return members[i].LDAP < members[j].LDAP
	})
}
