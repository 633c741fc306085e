package picker

import "github.com/internal-tools/org-activity-reports/internal/models"

// GroupView is one group section of the picker: its visible members after
// filtering and the derived tri-state of its header checkbox.
type GroupView struct {
	Group   models.GroupTag       `json:"group"`
	Members []models.Member       `json:"members"`
	State   models.SelectionState `json:"state"`
}

// GroupStates derives the grouped view for a fixed, ordered group list.
// Groups with zero visible members are still emitted so callers can tell
// "empty group" apart from "group absent from scope".
func GroupStates(order []models.GroupTag, visible []models.Member, selected map[string]struct{}) []GroupView {
	byGroup := map[models.GroupTag][]models.Member{}
	for _, m := range visible {
		byGroup[m.Group] = append(byGroup[m.Group], m)
	}

	views := make([]GroupView, 0, len(order))
	for _, g := range order {
		members := byGroup[g]
		if members == nil {
			members = []models.Member{}
		}
		views = append(views, GroupView{
			Group:   g,
			Members: members,
			State:   groupState(members, selected),
		})
	}
	return views
}

// groupState computes the tri-state for one group's visible members:
// unchecked when nothing visible or nothing selected, checked when every
// visible member is selected, indeterminate otherwise.
func groupState(members []models.Member, selected map[string]struct{}) models.SelectionState {
	if len(members) == 0 {
		return models.StateUnchecked
	}
	count := 0
	for _, m := range members {
		if _, ok := selected[m.ID]; ok {
			count++
		}
	}
	switch count {
	case 0:
		return models.StateUnchecked
	case len(members):
		return models.StateChecked
	default:
		return models.StateIndeterminate
	}
}
