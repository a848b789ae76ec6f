package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swtmply/hati-tayo/internal/httputil"
	"github.com/swtmply/hati-tayo/internal/middleware"
	"github.com/swtmply/hati-tayo/internal/models"
	"github.com/swtmply/hati-tayo/internal/service"
	"github.com/swtmply/hati-tayo/internal/split"
)

type percentageEntry struct {
	UserID     string  `json:"user_id"`
	Percentage float64 `json:"percentage"`
}

type fixedEntry struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

type itemEntry struct {
	Name           string   `json:"name"`
	Amount         float64  `json:"amount"`
	ParticipantIDs []string `json:"participant_ids"`
}

type createTransactionRequest struct {
	Name           string   `json:"name"`
	Amount         float64  `json:"amount"`
	SplitType      string   `json:"split_type"`
	PayerID        string   `json:"payer_id"`
	GroupID        string   `json:"group_id"`
	GroupName      string   `json:"group_name"`
	ParticipantIDs []string `json:"participant_ids"`

	// Exactly one of these carries the policy input, matching SplitType.
	Percentages  []percentageEntry `json:"percentages,omitempty"`
	FixedAmounts []fixedEntry      `json:"fixed_amounts,omitempty"`
	Items        []itemEntry       `json:"items,omitempty"`
}

// policy builds the typed split policy variant from the wire shape.
func (req *createTransactionRequest) policy() (split.Policy, error) {
	splitType, err := split.ParseType(req.SplitType)
	if err != nil {
		return nil, err
	}

	switch splitType {
	case split.TypeEqual:
		return split.Equal{}, nil
	case split.TypePercentage:
		allocations := make([]split.PercentAllocation, len(req.Percentages))
		for i, p := range req.Percentages {
			allocations[i] = split.PercentAllocation{UserID: p.UserID, Percentage: p.Percentage}
		}
		return split.Percentage{Allocations: allocations}, nil
	case split.TypeFixed:
		allocations := make([]split.FixedAllocation, len(req.FixedAmounts))
		for i, f := range req.FixedAmounts {
			allocations[i] = split.FixedAllocation{UserID: f.UserID, Amount: f.Amount}
		}
		return split.Fixed{Allocations: allocations}, nil
	default:
		items := make([]split.Item, len(req.Items))
		for i, item := range req.Items {
			items[i] = split.Item{Name: item.Name, Amount: item.Amount, ParticipantIDs: item.ParticipantIDs}
		}
		return split.Shared{Items: items}, nil
	}
}

type participantShareResponse struct {
	User  *userResponse  `json:"user"`
	Share *shareResponse `json:"share"`
}

type transactionResponse struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Amount       float64                    `json:"amount"`
	GroupID      string                     `json:"group_id"`
	GroupName    string                     `json:"group_name"`
	SplitType    string                     `json:"split_type"`
	CreatedAt    int64                      `json:"created_at"`
	Payer        *userResponse              `json:"payer"`
	Participants []participantShareResponse `json:"participants"`
	Settled      bool                       `json:"settled"`
	ViewerShare  *shareResponse             `json:"viewer_share,omitempty"`
}

func toTransactionResponse(view *models.TransactionView) transactionResponse {
	resp := transactionResponse{
		ID:          view.Transaction.ID,
		Name:        view.Transaction.Name,
		Amount:      view.Transaction.Amount,
		GroupID:     view.Transaction.GroupID,
		GroupName:   view.GroupName,
		SplitType:   view.Transaction.SplitType,
		CreatedAt:   view.Transaction.CreatedAt,
		Payer:       toUserResponse(view.Payer),
		Settled:     view.Settled,
		ViewerShare: toShareResponse(view.ViewerShare),
	}
	for _, p := range view.Participants {
		resp.Participants = append(resp.Participants, participantShareResponse{
			User:  toUserResponse(p.User),
			Share: toShareResponse(p.Share),
		})
	}
	return resp
}

// CreateTransaction handles POST /transactions.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	policy, err := req.policy()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	payerID := req.PayerID
	if payerID == "" {
		payerID = middleware.GetUserID(r.Context())
	}

	id, err := h.Transactions.CreateTransaction(r.Context(), service.CreateTransactionInput{
		Name:           req.Name,
		Amount:         req.Amount,
		PayerID:        payerID,
		GroupID:        req.GroupID,
		GroupName:      req.GroupName,
		ParticipantIDs: req.ParticipantIDs,
		Policy:         policy,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	view, err := h.Transactions.GetTransactionDetails(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toTransactionResponse(view))
}

// GetTransaction handles GET /transactions/{id}.
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	view, err := h.Transactions.GetTransactionDetails(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTransactionResponse(view))
}

// ListTransactions handles GET /transactions for the acting user.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	views, err := h.Transactions.ListTransactionsForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, toTransactionResponse(view))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type settleRequest struct {
	ShareIDs []string `json:"share_ids"`
}

// SettleShares handles POST /shares/settle.
func (h *Handler) SettleShares(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Settlements.Settle(r.Context(), req.ShareIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"settled": len(req.ShareIDs)})
}

type balanceResponse struct {
	TotalOwed float64 `json:"total_owed"`
	TotalPaid float64 `json:"total_paid"`
}

// GetBalances handles GET /balances for the acting user.
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Balances.SummaryForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, balanceResponse{
		TotalOwed: summary.TotalOwed,
		TotalPaid: summary.TotalPaid,
	})
}
