package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/internal-tools/org-activity-reports/internal/models"
	"github.com/internal-tools/org-activity-reports/internal/picker"
)

const (
	selectionModeOwned    = "owned"
	selectionModeExternal = "external"
)

type openPickerRequest struct {
	Groups []string `json:"groups,omitempty"`
	// Mode selects the ownership variant explicitly: "owned" (default) keeps
	// selection state in the session, "external" mirrors the caller's list
	// and reports every change back.
	Mode     string   `json:"mode,omitempty"`
	Selected []string `json:"selected,omitempty"`
}

type pickerResponse struct {
	SessionID  string           `json:"session_id,omitempty"`
	View       picker.View      `json:"view"`
	LastChange *selectionChange `json:"last_change,omitempty"`
}

func (s *Server) handleOpenPicker(w http.ResponseWriter, r *http.Request) {
	var req openPickerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	groups, err := parseGroups(req.Groups, s.defaultGroups)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry := &pickerSession{}
	var sel picker.Selection
	switch req.Mode {
	case "", selectionModeOwned:
		sel = picker.NewOwnedSelection(req.Selected...)
	case selectionModeExternal:
		sel = picker.NewExternalSelection(req.Selected, func(ids []string, members []models.Member) {
			entry.lastChange = &selectionChange{IDs: ids, Members: members}
		})
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown selection mode %q", req.Mode))
		return
	}

	session := picker.NewSession(s.cache, s.directory, groups, sel, picker.Callbacks{})
	entry.session = session

	// A failed open still yields a usable empty picker; the client retries by
	// reopening.
	_ = session.Open(r.Context())

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = entry
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, pickerResponse{
		SessionID:  id,
		View:       session.View(),
		LastChange: entry.lastChange,
	})
}

func (s *Server) handlePickerView(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(entry *pickerSession) (int, any) {
		return http.StatusOK, pickerResponse{View: entry.session.View(), LastChange: entry.lastChange}
	})
}

func (s *Server) handlePickerQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.withSession(w, r, func(entry *pickerSession) (int, any) {
		entry.session.SetQuery(req.Query)
		return http.StatusOK, pickerResponse{View: entry.session.View(), LastChange: entry.lastChange}
	})
}

func (s *Server) handlePickerTerminated(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Include bool `json:"include"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.withSession(w, r, func(entry *pickerSession) (int, any) {
		// Fetch failure keeps the active list; not an API error.
		_ = entry.session.SetIncludeTerminated(r.Context(), req.Include)
		return http.StatusOK, pickerResponse{View: entry.session.View(), LastChange: entry.lastChange}
	})
}

func (s *Server) handleToggleMember(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["memberID"]
	s.withSession(w, r, func(entry *pickerSession) (int, any) {
		entry.session.ToggleMember(memberID)
		return http.StatusOK, pickerResponse{View: entry.session.View(), LastChange: entry.lastChange}
	})
}

func (s *Server) handleToggleGroup(w http.ResponseWriter, r *http.Request) {
	group, ok := models.ParseGroupTag(mux.Vars(r)["group"])
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unrecognized group %q", mux.Vars(r)["group"]))
		return
	}
	s.withSession(w, r, func(entry *pickerSession) (int, any) {
		entry.session.ToggleGroup(group)
		return http.StatusOK, pickerResponse{View: entry.session.View(), LastChange: entry.lastChange}
	})
}

func (s *Server) handlePickerConfirm(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.withSession(w, r, func(entry *pickerSession) (int, any) {
		entry.session.Confirm()
		ids, members := entry.session.ResolveSelection()
		s.dropSession(id)
		return http.StatusOK, selectionChange{IDs: ids, Members: members}
	})
}

func (s *Server) handlePickerCancel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.withSession(w, r, func(entry *pickerSession) (int, any) {
		entry.session.Cancel()
		s.dropSession(id)
		return http.StatusNoContent, nil
	})
}

// withSession looks up the session, serializes access to it, and writes the
// handler's response.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(entry *pickerSession) (int, any)) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	entry, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("picker session %s not found", id))
		return
	}

	entry.mu.Lock()
	status, body := fn(entry)
	entry.mu.Unlock()

	if body == nil {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, body)
}

func (s *Server) dropSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func parseGroups(labels []string, fallback []models.GroupTag) ([]models.GroupTag, error) {
	if len(labels) == 0 {
		return fallback, nil
	}
	groups := make([]models.GroupTag, 0, len(labels))
	for _, label := range labels {
		g, ok := models.ParseGroupTag(label)
		if !ok {
			return nil, fmt.Errorf("unrecognized group %q", label)
		}
		groups = append(groups, g)
	}
	return groups, nil
}
