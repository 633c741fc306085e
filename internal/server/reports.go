package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/internal-tools/org-activity-reports/internal/models"
	"github.com/internal-tools/org-activity-reports/internal/picker"
)

type buildReportRequest struct {
	Groups            []string  `json:"groups,omitempty"`
	MemberIDs         []string  `json:"member_ids"`
	IncludeTerminated bool      `json:"include_terminated"`
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
}

func (s *Server) handleBuildReport(w http.ResponseWriter, r *http.Request) {
	report, _, status, err := s.buildReport(r)
	if err != nil {
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("snapshot store is not configured"))
		return
	}

	report, groupsKey, status, err := s.buildReport(r)
	if err != nil {
		writeError(w, status, err)
		return
	}

	snapshot := models.NewReportSnapshot(groupsKey, *report, s.snapshotTTL)
	if err := s.store.SaveSnapshot(r.Context(), snapshot); err != nil {
		writeError(w, http.StatusBadGateway, fmt.Errorf("saving snapshot: %w", err))
		return
	}
	writeJSON(w, http.StatusCreated, snapshot)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("snapshot store is not configured"))
		return
	}

	groups, err := parseGroups(splitQueryList(r.URL.Query().Get("groups")), s.defaultGroups)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = parsed
	}

	items, err := s.store.ListSnapshots(r.Context(), picker.Key(groups), limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Errorf("listing snapshots: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// buildReport resolves the requested member ids against the cached directory
// for the requested scope and runs the report engine over them.
func (s *Server) buildReport(r *http.Request) (*models.ActivityReport, string, int, error) {
	var req buildReportRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, "", http.StatusBadRequest, err
	}

	rng := models.DateRange{From: req.From, To: req.To}
	if err := rng.Validate(); err != nil {
		return nil, "", http.StatusBadRequest, err
	}
	if len(req.MemberIDs) == 0 {
		return nil, "", http.StatusBadRequest, fmt.Errorf("member_ids is required")
	}

	groups, err := parseGroups(req.Groups, s.defaultGroups)
	if err != nil {
		return nil, "", http.StatusBadRequest, err
	}

	key := picker.Key(groups)
	scope := models.ScopeActive
	if req.IncludeTerminated {
		scope = models.ScopeAll
	}
	base, _, err := s.cache.GetOrFetch(r.Context(), key, scope, func(ctx context.Context) ([]models.Member, error) {
		return s.directory.FetchMembers(ctx, groups, req.IncludeTerminated)
	})
	if err != nil {
		return nil, "", http.StatusBadGateway, fmt.Errorf("loading directory: %w", err)
	}

	byID := make(map[string]models.Member, len(base))
	for _, m := range base {
		byID[m.ID] = m
	}
	members := make([]models.Member, 0, len(req.MemberIDs))
	for _, id := range req.MemberIDs {
		if m, ok := byID[id]; ok {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return nil, "", http.StatusBadRequest, fmt.Errorf("none of the requested member ids exist in scope %s", key)
	}

	report, err := s.engine.Build(r.Context(), members, rng)
	if err != nil {
		return nil, "", http.StatusInternalServerError, err
	}
	return report, key, 0, nil
}

func splitQueryList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
