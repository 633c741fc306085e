package picker

import "github.com/internal-tools/org-activity-reports/internal/models"

// ChangeHandler receives the selection after every mutating operation in
// external mode. Members carries the resolved records for ids found in the
// active base list; ids with no match are kept in ids but absent from members.
type ChangeHandler func(ids []string, members []models.Member)

// Selection is the ownership variant for picker selection state. The variant
// is fixed at construction: OwnedSelection keeps the ids internally, while
// ExternalSelection mirrors a caller-owned list and notifies on change.
type Selection interface {
	IDs() []string
	replace(ids []string)
	handler() ChangeHandler
}

// OwnedSelection holds selection state internally. No change notifications
// are emitted; callers read the final selection on confirm.
type OwnedSelection struct {
	ids []string
}

// NewOwnedSelection creates an internally held selection, optionally seeded.
func NewOwnedSelection(initial ...string) *OwnedSelection {
	return &OwnedSelection{ids: append([]string{}, initial...)}
}

func (s *OwnedSelection) IDs() []string          { return append([]string{}, s.ids...) }
func (s *OwnedSelection) replace(ids []string)   { s.ids = append([]string{}, ids...) }
func (s *OwnedSelection) handler() ChangeHandler { return nil }

// ExternalSelection mirrors a caller-owned selection list and invokes the
// change handler after every mutation.
type ExternalSelection struct {
	ids      []string
	onChange ChangeHandler
}

// NewExternalSelection creates a caller-owned selection with the given
// starting ids and change handler.
func NewExternalSelection(initial []string, onChange ChangeHandler) *ExternalSelection {
	return &ExternalSelection{ids: append([]string{}, initial...), onChange: onChange}
}

func (s *ExternalSelection) IDs() []string          { return append([]string{}, s.ids...) }
func (s *ExternalSelection) replace(ids []string)   { s.ids = append([]string{}, ids...) }
func (s *ExternalSelection) handler() ChangeHandler { return s.onChange }

// Controller owns the selection lifecycle: toggle operations, outbound change
// notifications, and the overlapping-fetch loading counter.
type Controller struct {
	sel     Selection
	base    []models.Member
	loading int
}

// NewController creates a controller around the given selection variant.
func NewController(sel Selection) *Controller {
	if sel == nil {
		sel = NewOwnedSelection()
	}
	return &Controller{sel: sel}
}

// SetBaseList replaces the base member list selections resolve against.
func (c *Controller) SetBaseList(members []models.Member) {
	c.base = members
}

// SelectedIDs returns the current selection.
func (c *Controller) SelectedIDs() []string {
	return c.sel.IDs()
}

// SelectedSet returns the current selection as a set.
func (c *Controller) SelectedSet() map[string]struct{} {
	ids := c.sel.IDs()
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// ToggleMember adds the id to the selection if absent, removes it otherwise.
func (c *Controller) ToggleMember(id string) {
	ids := c.sel.IDs()
	next := make([]string, 0, len(ids)+1)
	found := false
	for _, existing := range ids {
		if existing == id {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		next = append(next, id)
	}
	c.SetSelection(next)
}

// SetGroupSelection adds (or removes) every visible member of the group.
// The visible list is the post-filter subset, so a group select-all with an
// active search targets exactly the displayed results.
func (c *Controller) SetGroupSelection(group models.GroupTag, visible []models.Member, selectAll bool) {
	groupIDs := map[string]struct{}{}
	for _, m := range visible {
		if m.Group == group {
			groupIDs[m.ID] = struct{}{}
		}
	}

	ids := c.sel.IDs()
	next := make([]string, 0, len(ids)+len(groupIDs))
	for _, id := range ids {
		if _, inGroup := groupIDs[id]; inGroup {
			continue
		}
		next = append(next, id)
	}
	if selectAll {
		for _, m := range visible {
			if m.Group == group {
				next = append(next, m.ID)
			}
		}
	}
	c.SetSelection(next)
}

// SetSelection replaces the selection and, in external mode, notifies the
// handler with the ids and the Members resolved against the base list. Ids
// not present in the base list propagate unresolved.
func (c *Controller) SetSelection(ids []string) {
	c.sel.replace(ids)
	if notify := c.sel.handler(); notify != nil {
		notify(c.sel.IDs(), c.ResolveMembers(ids))
	}
}

// ResolveMembers maps ids to Member records from the base list, preserving
// id order and skipping ids with no match.
func (c *Controller) ResolveMembers(ids []string) []models.Member {
	byID := make(map[string]models.Member, len(c.base))
	for _, m := range c.base {
		byID[m.ID] = m
	}
	resolved := make([]models.Member, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			resolved = append(resolved, m)
		}
	}
	return resolved
}

// BeginLoad increments the loading counter.
func (c *Controller) BeginLoad() {
	c.loading++
}

// EndLoad decrements the loading counter, never below zero.
func (c *Controller) EndLoad() {
	if c.loading > 0 {
		c.loading--
	}
}

// Loading reports whether any fetch is still outstanding. A counter is used
// instead of a boolean so overlapping Active and All fetches do not clear the
// indicator after only one completes.
func (c *Controller) Loading() bool {
	return c.loading > 0
}
