package models

import "testing"

func TestParseGroupTagCaseInsensitive(t *testing.T) {
	cases := []struct {
		label string
		want  GroupTag
		ok    bool
	}{
		{"Employees", GroupEmployees, true},
		{"EMPLOYEES", GroupEmployees, true},
		{"interns", GroupInterns, true},
		{" Volunteers ", GroupVolunteers, true},
		{"contractors", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseGroupTag(tc.label)
		if ok != tc.ok {
			t.Fatalf("ParseGroupTag(%q) ok = %v, want %v", tc.label, ok, tc.ok)
		}
		if got != tc.want {
			t.Fatalf("ParseGroupTag(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestParseMemberStatus(t *testing.T) {
	if _, ok := ParseMemberStatus("Active"); !ok {
		t.Fatal("expected Active to parse")
	}
	if status, ok := ParseMemberStatus("TERMINATED"); !ok || status != StatusTerminated {
		t.Fatalf("expected terminated status, got %q ok=%v", status, ok)
	}
	if _, ok := ParseMemberStatus("on-leave"); ok {
		t.Fatal("expected unrecognized status to be rejected")
	}
}

func TestCanonicalGroupsOrder(t *testing.T) {
	groups := CanonicalGroups()
	want := []GroupTag{GroupEmployees, GroupInterns, GroupVolunteers}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Fatalf("group %d = %q, want %q", i, groups[i], want[i])
		}
	}
}
