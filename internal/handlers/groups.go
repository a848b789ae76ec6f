package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swtmply/hati-tayo/internal/httputil"
	"github.com/swtmply/hati-tayo/internal/middleware"
	"github.com/swtmply/hati-tayo/internal/models"
)

type createGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

type groupResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	MemberIDs []string        `json:"member_ids"`
	Members   []*userResponse `json:"members,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		MemberIDs: g.MemberIDs,
		CreatedAt: g.CreatedAt,
	}
}

// CreateGroup handles POST /groups.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		httputil.WriteError(w, http.StatusBadRequest, "group name required")
		return
	}

	group, err := h.Groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.MemberIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toGroupResponse(group))
}

// GetGroup handles GET /groups/{id}.
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	view, err := h.Groups.GetGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := toGroupResponse(view.Group)
	for _, member := range view.Members {
		resp.Members = append(resp.Members, toUserResponse(member))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// ListGroups handles GET /groups for the acting user.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.ListGroupsForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]groupResponse, 0, len(groups))
	for _, group := range groups {
		resp = append(resp, toGroupResponse(group))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type groupSummaryResponse struct {
	TotalOwed        float64 `json:"total_owed"`
	TotalPaid        float64 `json:"total_paid"`
	TransactionCount int     `json:"transaction_count"`
}

// GetGroupSummary handles GET /groups/{id}/summary for the acting user.
func (h *Handler) GetGroupSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Balances.GroupSummary(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, groupSummaryResponse{
		TotalOwed:        summary.TotalOwed,
		TotalPaid:        summary.TotalPaid,
		TransactionCount: summary.TransactionCount,
	})
}
