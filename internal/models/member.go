package models

import "strings"

// GroupTag identifies one of the recognized directory groups.
type GroupTag string

const (
	GroupEmployees  GroupTag = "employees"
	GroupInterns    GroupTag = "interns"
	GroupVolunteers GroupTag = "volunteers"
)

// CanonicalGroups returns the recognized groups in display order.
func CanonicalGroups() []GroupTag {
	return []GroupTag{GroupEmployees, GroupInterns, GroupVolunteers}
}

// ParseGroupTag resolves a directory group label case-insensitively.
// Unrecognized labels return ok=false and are dropped by the loader.
func ParseGroupTag(label string) (GroupTag, bool) {
	switch GroupTag(strings.ToLower(strings.TrimSpace(label))) {
	case GroupEmployees:
		return GroupEmployees, true
	case GroupInterns:
		return GroupInterns, true
	case GroupVolunteers:
		return GroupVolunteers, true
	}
	return "", false
}

// MemberStatus is the employment status label from the directory payload.
type MemberStatus string

const (
	StatusActive     MemberStatus = "active"
	StatusTerminated MemberStatus = "terminated"
)

// ParseMemberStatus resolves a status label case-insensitively.
func ParseMemberStatus(label string) (MemberStatus, bool) {
	switch MemberStatus(strings.ToLower(strings.TrimSpace(label))) {
	case StatusActive:
		return StatusActive, true
	case StatusTerminated:
		return StatusTerminated, true
	}
	return "", false
}

// Member is a normalized directory record. The directory's ldap key is the
// only stable identifier the inbound contract provides, so ID mirrors it.
type Member struct {
	ID         string   `json:"id"`
	LDAP       string   `json:"ldap"`
	FullName   string   `json:"full_name"`
	Group      GroupTag `json:"group"`
	Terminated bool     `json:"terminated"`
}

// SelectionState is the derived tri-state of a group header checkbox.
type SelectionState string

const (
	StateUnchecked     SelectionState = "unchecked"
	StateChecked       SelectionState = "checked"
	StateIndeterminate SelectionState = "indeterminate"
)

// Scope distinguishes cache entries covering only active members from
// entries that include terminated ones.
type Scope string

const (
	ScopeActive Scope = "active"
	ScopeAll    Scope = "all"
)
