// Package handlers implements the JSON HTTP layer. Handlers decode and
// shape requests and responses; every invariant lives in the services and
// below, so other callers of the core get the same validation.
package handlers

import (
	"errors"
	"net/http"

	"github.com/swtmply/hati-tayo/internal/auth"
	"github.com/swtmply/hati-tayo/internal/httputil"
	"github.com/swtmply/hati-tayo/internal/models"
	"github.com/swtmply/hati-tayo/internal/service"
	"github.com/swtmply/hati-tayo/internal/split"
	"github.com/swtmply/hati-tayo/internal/storage"
)

// Handler bundles the services behind the HTTP routes.
type Handler struct {
	Auth         *service.AuthService
	Transactions *service.TransactionService
	Settlements  *service.SettlementService
	Balances     *service.BalanceService
	Groups       *service.GroupService
	Users        storage.Store
}

// writeServiceError maps core error kinds onto HTTP status codes so the
// client can render the specific failure, not a generic one.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, split.ErrInvalidSplit),
		errors.Is(err, service.ErrMissingGroup),
		errors.Is(err, auth.ErrWeakPassword):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		httputil.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrShareNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	default:
		httputil.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func toUserResponse(u *models.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:       u.ID,
		Name:     u.Name,
		ImageURL: u.ImageURL,
		Email:    u.Email,
		Phone:    u.Phone,
	}
}

type shareResponse struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

func toShareResponse(s *models.Share) *shareResponse {
	if s == nil {
		return nil
	}
	return &shareResponse{
		ID:     s.ID,
		UserID: s.UserID,
		Amount: s.Amount,
		Status: string(s.Status),
	}
}
