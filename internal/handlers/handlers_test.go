package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swtmply/hati-tayo/internal/auth"
	"github.com/swtmply/hati-tayo/internal/handlers"
	"github.com/swtmply/hati-tayo/internal/routes"
	"github.com/swtmply/hati-tayo/internal/service"
	"github.com/swtmply/hati-tayo/internal/storage/sqlite"
)

// setupServer builds a full server against a temp SQLite database.
func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	h := &handlers.Handler{
		Auth:         service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		Transactions: service.NewTransactionService(store),
		Settlements:  service.NewSettlementService(store),
		Balances:     service.NewBalanceService(store),
		Groups:       service.NewGroupService(store),
		Users:        store,
	}

	server := httptest.NewServer(routes.New(h, jwtManager))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body any, out any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type sessionBody struct {
	Token string `json:"token"`
	User  struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
}

func register(t *testing.T, server *httptest.Server, email, name string) sessionBody {
	t.Helper()
	var session sessionBody
	resp := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
		"email":    email,
		"name":     name,
		"password": "long enough password",
	}, &session)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return session
}

func TestTransactionFlow(t *testing.T) {
	server := setupServer(t)

	ana := register(t, server, "ana@example.com", "Ana")
	ben := register(t, server, "ben@example.com", "Ben")

	// Unauthenticated requests are rejected.
	resp := doJSON(t, http.MethodGet, server.URL+"/transactions", "", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var txn struct {
		ID           string `json:"id"`
		GroupID      string `json:"group_id"`
		Settled      bool   `json:"settled"`
		Participants []struct {
			Share struct {
				ID     string  `json:"id"`
				UserID string  `json:"user_id"`
				Amount float64 `json:"amount"`
				Status string  `json:"status"`
			} `json:"share"`
		} `json:"participants"`
	}
	resp = doJSON(t, http.MethodPost, server.URL+"/transactions", ana.Token, map[string]any{
		"name":            "Dinner",
		"amount":          100,
		"split_type":      "EQUAL",
		"group_name":      "Dinner Duo",
		"participant_ids": []string{ana.User.ID, ben.User.ID},
	}, &txn)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, txn.ID)
	require.NotEmpty(t, txn.GroupID)
	require.False(t, txn.Settled)
	require.Len(t, txn.Participants, 2)

	var benShareID string
	for _, p := range txn.Participants {
		if p.Share.UserID == ben.User.ID {
			benShareID = p.Share.ID
			require.Equal(t, "PENDING", p.Share.Status)
		} else {
			require.Equal(t, "PAID", p.Share.Status)
		}
	}
	require.NotEmpty(t, benShareID)

	var balances struct {
		TotalOwed float64 `json:"total_owed"`
		TotalPaid float64 `json:"total_paid"`
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/balances", ben.Token, nil, &balances)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 50, balances.TotalOwed, 0.01)

	resp = doJSON(t, http.MethodPost, server.URL+"/shares/settle", ben.Token, map[string]any{
		"share_ids": []string{benShareID},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/transactions/"+txn.ID, ana.Token, nil, &txn)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, txn.Settled)

	resp = doJSON(t, http.MethodGet, server.URL+"/balances", ben.Token, nil, &balances)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 0, balances.TotalOwed, 0.01)
}

func TestInvalidSplitRejected(t *testing.T) {
	server := setupServer(t)
	ana := register(t, server, "ana@example.com", "Ana")
	ben := register(t, server, "ben@example.com", "Ben")

	resp := doJSON(t, http.MethodPost, server.URL+"/transactions", ana.Token, map[string]any{
		"name":            "Dinner",
		"amount":          500,
		"split_type":      "PERCENTAGE",
		"group_name":      "Duo",
		"participant_ids": []string{ana.User.ID, ben.User.ID},
		"percentages": []map[string]any{
			{"user_id": ana.User.ID, "percentage": 60},
			{"user_id": ben.User.ID, "percentage": 30},
		},
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSettleUnknownShare(t *testing.T) {
	server := setupServer(t)
	ana := register(t, server, "ana@example.com", "Ana")

	resp := doJSON(t, http.MethodPost, server.URL+"/shares/settle", ana.Token, map[string]any{
		"share_ids": []string{"missing"},
	}, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMissingGroupRejected(t *testing.T) {
	server := setupServer(t)
	ana := register(t, server, "ana@example.com", "Ana")

	resp := doJSON(t, http.MethodPost, server.URL+"/transactions", ana.Token, map[string]any{
		"name":            "Dinner",
		"amount":          100,
		"split_type":      "EQUAL",
		"participant_ids": []string{ana.User.ID},
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGroupSummaryEndpoint(t *testing.T) {
	server := setupServer(t)
	ana := register(t, server, "ana@example.com", "Ana")
	ben := register(t, server, "ben@example.com", "Ben")

	var group struct {
		ID string `json:"id"`
	}
	resp := doJSON(t, http.MethodPost, server.URL+"/groups", ana.Token, map[string]any{
		"name":       "Flatmates",
		"member_ids": []string{ben.User.ID},
	}, &group)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/transactions", ana.Token, map[string]any{
		"name":            "Rent",
		"amount":          1000,
		"split_type":      "FIXED",
		"group_id":        group.ID,
		"participant_ids": []string{ana.User.ID, ben.User.ID},
		"fixed_amounts": []map[string]any{
			{"user_id": ana.User.ID, "amount": 400},
			{"user_id": ben.User.ID, "amount": 600},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var summary struct {
		TotalOwed        float64 `json:"total_owed"`
		TotalPaid        float64 `json:"total_paid"`
		TransactionCount int     `json:"transaction_count"`
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/groups/"+group.ID+"/summary", ben.Token, nil, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, summary.TransactionCount)
	require.InDelta(t, 600, summary.TotalOwed, 0.01)
}
