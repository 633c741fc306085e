package picker

import (
	"testing"

	"github.com/internal-tools/org-activity-reports/internal/models"
)

func TestToggleMemberIsSymmetric(t *testing.T) {
	ctrl := NewController(NewOwnedSelection())

	ctrl.ToggleMember("ali")
	if ids := ctrl.SelectedIDs(); len(ids) != 1 || ids[0] != "ali" {
		t.Fatalf("expected [ali], got %v", ids)
	}

	ctrl.ToggleMember("ali")
	if ids := ctrl.SelectedIDs(); len(ids) != 0 {
		t.Fatalf("expected empty selection after second toggle, got %v", ids)
	}
}

func TestOwnedSelectionSeedsInitialIDs(t *testing.T) {
	ctrl := NewController(NewOwnedSelection("ali", "bob"))
	ids := ctrl.SelectedIDs()
	if len(ids) != 2 || ids[0] != "ali" || ids[1] != "bob" {
		t.Fatalf("expected seeded selection, got %v", ids)
	}
}

func TestExternalSelectionNotifiesOnEveryChange(t *testing.T) {
	var gotIDs [][]string
	var gotMembers [][]models.Member
	sel := NewExternalSelection([]string{"ali"}, func(ids []string, members []models.Member) {
		gotIDs = append(gotIDs, ids)
		gotMembers = append(gotMembers, members)
	})
	ctrl := NewController(sel)
	ctrl.SetBaseList([]models.Member{
		{ID: "ali", LDAP: "ali", Group: models.GroupEmployees},
		{ID: "bob", LDAP: "bob", Group: models.GroupEmployees},
	})

	ctrl.ToggleMember("bob")
	ctrl.ToggleMember("ali")

	if len(gotIDs) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(gotIDs))
	}
	if len(gotIDs[0]) != 2 {
		t.Fatalf("first notification should carry 2 ids, got %v", gotIDs[0])
	}
	if len(gotIDs[1]) != 1 || gotIDs[1][0] != "bob" {
		t.Fatalf("second notification should carry [bob], got %v", gotIDs[1])
	}
	if len(gotMembers[1]) != 1 || gotMembers[1][0].ID != "bob" {
		t.Fatalf("expected resolved bob record, got %v", gotMembers[1])
	}
}

func TestExternalSelectionKeepsUnresolvableIDs(t *testing.T) {
	var lastIDs []string
	var lastMembers []models.Member
	sel := NewExternalSelection(nil, func(ids []string, members []models.Member) {
		lastIDs = ids
		lastMembers = members
	})
	ctrl := NewController(sel)
	ctrl.SetBaseList([]models.Member{{ID: "ali", LDAP: "ali"}})

	// "ghost" has no record in the base list: it stays in the id list but is
	// absent from the resolved members.
	ctrl.SetSelection([]string{"ali", "ghost"})

	if len(lastIDs) != 2 || lastIDs[1] != "ghost" {
		t.Fatalf("expected ghost retained in ids, got %v", lastIDs)
	}
	if len(lastMembers) != 1 || lastMembers[0].ID != "ali" {
		t.Fatalf("expected only ali resolved, got %v", lastMembers)
	}
}

func TestOwnedSelectionHasNoHandler(t *testing.T) {
	ctrl := NewController(NewOwnedSelection())
	// Must not panic with a nil handler.
	ctrl.SetSelection([]string{"ali"})
	if ids := ctrl.SelectedIDs(); len(ids) != 1 {
		t.Fatalf("expected selection applied, got %v", ids)
	}
}

func TestSetSelectionCopiesCallerSlice(t *testing.T) {
	ctrl := NewController(NewOwnedSelection())
	ids := []string{"ali", "bob"}
	ctrl.SetSelection(ids)

	// Mutating the slice handed in must not alias the stored selection.
	ids[0] = "mutated"
	got := ctrl.SelectedIDs()
	if len(got) != 2 || got[0] != "ali" || got[1] != "bob" {
		t.Fatalf("expected stored selection unaffected by caller mutation, got %v", got)
	}
}

func TestSetGroupSelectionTargetsVisibleSubset(t *testing.T) {
	ctrl := NewController(NewOwnedSelection())
	all := []models.Member{
		{ID: "ali", LDAP: "ali", FullName: "Alice Anderson", Group: models.GroupEmployees},
		{ID: "bob", LDAP: "bob", FullName: "Bob Brown", Group: models.GroupEmployees},
		{ID: "cat", LDAP: "cat", FullName: "Cat Carson", Group: models.GroupInterns},
	}
	ctrl.SetBaseList(all)

	// Select-all while a filter hides bob: only ali joins the selection.
	visible := FilterMembers(all, "ali")
	ctrl.SetGroupSelection(models.GroupEmployees, visible, true)
	if ids := ctrl.SelectedIDs(); len(ids) != 1 || ids[0] != "ali" {
		t.Fatalf("expected only visible member selected, got %v", ids)
	}

	// Select-all without a filter adds the rest of the group, not the interns.
	ctrl.SetGroupSelection(models.GroupEmployees, all, true)
	ids := ctrl.SelectedIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 employees selected, got %v", ids)
	}
	for _, id := range ids {
		if id == "cat" {
			t.Fatal("group select must not touch other groups")
		}
	}

	// Deselect-all removes only the group's visible members.
	ctrl.ToggleMember("cat")
	ctrl.SetGroupSelection(models.GroupEmployees, all, false)
	if ids := ctrl.SelectedIDs(); len(ids) != 1 || ids[0] != "cat" {
		t.Fatalf("expected only cat to survive deselect, got %v", ids)
	}
}

func TestSetGroupSelectionDoesNotDuplicate(t *testing.T) {
	ctrl := NewController(NewOwnedSelection("ali"))
	members := []models.Member{
		{ID: "ali", LDAP: "ali", Group: models.GroupEmployees},
		{ID: "bob", LDAP: "bob", Group: models.GroupEmployees},
	}
	ctrl.SetBaseList(members)

	ctrl.SetGroupSelection(models.GroupEmployees, members, true)
	if ids := ctrl.SelectedIDs(); len(ids) != 2 {
		t.Fatalf("expected no duplicate ids, got %v", ids)
	}
}

func TestResolveMembersPreservesIDOrder(t *testing.T) {
	ctrl := NewController(NewOwnedSelection())
	ctrl.SetBaseList([]models.Member{
		{ID: "ali", LDAP: "ali"},
		{ID: "bob", LDAP: "bob"},
	})

	resolved := ctrl.ResolveMembers([]string{"bob", "missing", "ali"})
	if len(resolved) != 2 || resolved[0].ID != "bob" || resolved[1].ID != "ali" {
		t.Fatalf("expected [bob ali], got %v", resolved)
	}
}

func TestLoadingCounter(t *testing.T) {
	ctrl := NewController(nil)
	if ctrl.Loading() {
		t.Fatal("fresh controller should not be loading")
	}

	ctrl.BeginLoad()
	ctrl.BeginLoad()
	ctrl.EndLoad()
	if !ctrl.Loading() {
		t.Fatal("one of two loads finished: still loading")
	}
	ctrl.EndLoad()
	if ctrl.Loading() {
		t.Fatal("all loads finished: not loading")
	}

	// Spurious EndLoad calls clamp at zero instead of going negative.
	ctrl.EndLoad()
	ctrl.BeginLoad()
	if !ctrl.Loading() {
		t.Fatal("loading must report true after BeginLoad despite earlier spurious EndLoad")
	}
}
