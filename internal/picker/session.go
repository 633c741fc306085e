package picker

import (
	"context"

	"github.com/internal-tools/org-activity-reports/internal/interfaces"
	"github.com/internal-tools/org-activity-reports/internal/models"
	"github.com/sirupsen/logrus"
)

// LoadState is the picker load lifecycle state.
type LoadState string

const (
	StateIdle          LoadState = "idle"
	StateLoadingActive LoadState = "loading_active"
	StateLoadedActive  LoadState = "loaded_active"
	StateLoadingAll    LoadState = "loading_all"
	StateLoadedAll     LoadState = "loaded_all"
)

// Callbacks are the outbound notifications to the consuming view. OnConfirm
// and OnCancel fire on explicit close actions; selection change notifications
// go through the ExternalSelection handler instead.
type Callbacks struct {
	OnConfirm func(ids []string, members []models.Member)
	OnCancel  func()
}

// Session drives one open picker: it loads the directory through the cache,
// applies the search filter, derives group tri-states, and routes selection
// mutations through the controller.
//
// A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	cache     *Cache
	client    interfaces.DirectoryClient
	groups    []models.GroupTag
	key       string
	ctrl      *Controller
	callbacks Callbacks

	query             string
	includeTerminated bool

	active    []models.Member
	all       []models.Member
	allLoaded bool
	state     LoadState
}

// NewSession creates a picker session over the given scope. The selection
// variant decides ownership: pass an ExternalSelection to keep selection
// state caller-owned, or an OwnedSelection (or nil) to let the session own it.
func NewSession(cache *Cache, client interfaces.DirectoryClient, groups []models.GroupTag, sel Selection, callbacks Callbacks) *Session {
	if len(groups) == 0 {
		groups = models.CanonicalGroups()
	}
	return &Session{
		cache:     cache,
		client:    client,
		groups:    groups,
		key:       Key(groups),
		ctrl:      NewController(sel),
		callbacks: callbacks,
		state:     StateIdle,
	}
}

// Key returns the normalized cache key for this session's scope.
func (s *Session) Key() string {
	return s.key
}

// State returns the current load lifecycle state.
func (s *Session) State() LoadState {
	return s.state
}

// Open eagerly loads the active-member list through the cache. A transport
// failure leaves the picker usable with an empty list and is not cached, so
// reopening retries the fetch.
func (s *Session) Open(ctx context.Context) error {
	s.state = StateLoadingActive
	s.ctrl.BeginLoad()
	defer s.ctrl.EndLoad()

	members, hit, err := s.cache.GetOrFetch(ctx, s.key, models.ScopeActive, func(ctx context.Context) ([]models.Member, error) {
		return s.client.FetchMembers(ctx, s.groups, false)
	})
	if err != nil {
		logrus.WithError(err).WithField("scope", s.key).Warn("directory fetch failed, rendering empty picker")
		s.active = []models.Member{}
		s.state = StateLoadedActive
		s.ctrl.SetBaseList(s.active)
		return err
	}

	logrus.WithFields(logrus.Fields{
		"scope":     s.key,
		"members":   len(members),
		"cache_hit": hit,
	}).Debug("picker opened")

	s.active = members
	s.state = StateLoadedActive
	s.ctrl.SetBaseList(s.base())
	return nil
}

// SetIncludeTerminated toggles terminated-member visibility. The All-scope
// list is fetched lazily the first time inclusion is requested for this key;
// subsequent toggles flip between the loaded lists without refetching.
func (s *Session) SetIncludeTerminated(ctx context.Context, include bool) error {
	s.includeTerminated = include
	defer func() { s.ctrl.SetBaseList(s.base()) }()

	if !include {
		if s.state == StateLoadedAll {
			s.state = StateLoadedActive
		}
		return nil
	}
	if s.allLoaded {
		s.state = StateLoadedAll
		return nil
	}

	s.state = StateLoadingAll
	s.ctrl.BeginLoad()
	defer s.ctrl.EndLoad()

	members, hit, err := s.cache.GetOrFetch(ctx, s.key, models.ScopeAll, func(ctx context.Context) ([]models.Member, error) {
		return s.client.FetchMembers(ctx, s.groups, true)
	})
	if err != nil {
		logrus.WithError(err).WithField("scope", s.key).Warn("terminated-member fetch failed, keeping active list")
		s.state = StateLoadedActive
		return err
	}

	logrus.WithFields(logrus.Fields{
		"scope":     s.key,
		"members":   len(members),
		"cache_hit": hit,
	}).Debug("terminated members loaded")

	s.all = members
	s.allLoaded = true
	s.state = StateLoadedAll
	return nil
}

// SetQuery updates the search filter.
func (s *Session) SetQuery(query string) {
	s.query = query
}

// ToggleMember flips one member in or out of the selection.
func (s *Session) ToggleMember(id string) {
	s.ctrl.ToggleMember(id)
}

// ToggleGroup applies the group header click: a checked group clears its
// visible members from the selection; unchecked or indeterminate selects
// every currently visible member of the group.
func (s *Session) ToggleGroup(group models.GroupTag) {
	visible := s.Visible()
	state := groupState(membersOfGroup(visible, group), s.ctrl.SelectedSet())
	s.ctrl.SetGroupSelection(group, visible, state != models.StateChecked)
}

// SelectedIDs returns the current selection.
func (s *Session) SelectedIDs() []string {
	return s.ctrl.SelectedIDs()
}

// Loading reports whether any fetch is outstanding.
func (s *Session) Loading() bool {
	return s.ctrl.Loading()
}

// Visible returns the base list after the search filter.
func (s *Session) Visible() []models.Member {
	return FilterMembers(s.base(), s.query)
}

// View is the renderable picker state for the consuming view.
type View struct {
	Groups            []GroupView `json:"groups"`
	Query             string      `json:"query"`
	IncludeTerminated bool        `json:"include_terminated"`
	Loading           bool        `json:"loading"`
	State             LoadState   `json:"state"`
	SelectedIDs       []string    `json:"selected_ids"`
}

// View derives the grouped tri-state view from the current filter and
// selection.
func (s *Session) View() View {
	return View{
		Groups:            GroupStates(s.groups, s.Visible(), s.ctrl.SelectedSet()),
		Query:             s.query,
		IncludeTerminated: s.includeTerminated,
		Loading:           s.ctrl.Loading(),
		State:             s.state,
		SelectedIDs:       s.ctrl.SelectedIDs(),
	}
}

// ResolveSelection returns the selection ids with their resolved Members.
func (s *Session) ResolveSelection() ([]string, []models.Member) {
	ids := s.ctrl.SelectedIDs()
	return ids, s.ctrl.ResolveMembers(ids)
}

// Confirm fires the confirm callback with the resolved selection.
func (s *Session) Confirm() {
	if s.callbacks.OnConfirm != nil {
		ids, members := s.ResolveSelection()
		s.callbacks.OnConfirm(ids, members)
	}
}

// Cancel fires the cancel callback. The selection is discarded by the caller
// dropping the session.
func (s *Session) Cancel() {
	if s.callbacks.OnCancel != nil {
		s.callbacks.OnCancel()
	}
}

// base returns the list the picker currently operates on: the All list once
// terminated inclusion is on and loaded, the Active list otherwise.
func (s *Session) base() []models.Member {
	if s.includeTerminated && s.allLoaded {
		return s.all
	}
	return s.active
}

func membersOfGroup(members []models.Member, group models.GroupTag) []models.Member {
	var out []models.Member
	for _, m := range members {
		if m.Group == group {
			out = append(out, m)
		}
	}
	return out
}
