package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/dto"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransferUseCase records the request it was handed and reports success
type fakeTransferUseCase struct {
	req    portuse.TransferRequest
	called bool
}

func (f *fakeTransferUseCase) Transfer(ctx context.Context, req portuse.TransferRequest) (*portuse.TransferResult, error) {
	f.called = true
	f.req = req
	txn := &entity.Transaction{
		ID:            "txn_admin1",
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Type:          req.Type,
		Status:        entity.StatusCompleted,
		Reference:     "REFADMIN00001",
	}
	return &portuse.TransferResult{Success: true, Transaction: txn, StatusCode: http.StatusOK}, nil
}

func newAdminRouter(transfers portuse.TransferUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(transfers, nil, logger.NewNoopLogger())

	router := gin.New()
	router.POST("/admin/transaction", func(c *gin.Context) {
		c.Set(middleware.ContextAccountID, "admin-1")
		c.Set(middleware.ContextRole, "admin")
	}, h.ProcessTransaction)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminTransactionRouting(t *testing.T) {
	t.Run("Admin credit flows from the admin to the target", func(t *testing.T) {
		transfers := &fakeTransferUseCase{}
		router := newAdminRouter(transfers)

		rec := postJSON(t, router, "/admin/transaction", dto.AdminTransactionRequest{
			Type:            "admin_credit",
			TargetAccountID: "acc-1",
			Amount:          "500.00",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, transfers.called)
		assert.Equal(t, "admin-1", transfers.req.FromAccountID)
		assert.Equal(t, "acc-1", transfers.req.ToAccountID)
		assert.Equal(t, entity.TypeAdminCredit, transfers.req.Type)
	})

	t.Run("Admin debit flows from the target to the admin", func(t *testing.T) {
		transfers := &fakeTransferUseCase{}
		router := newAdminRouter(transfers)

		rec := postJSON(t, router, "/admin/transaction", dto.AdminTransactionRequest{
			Type:            "admin_debit",
			TargetAccountID: "acc-1",
			Amount:          "200.00",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, transfers.called)
		assert.Equal(t, "acc-1", transfers.req.FromAccountID)
		assert.Equal(t, "admin-1", transfers.req.ToAccountID)
	})

	t.Run("Unknown type is rejected before any transfer runs", func(t *testing.T) {
		transfers := &fakeTransferUseCase{}
		router := newAdminRouter(transfers)

		rec := postJSON(t, router, "/admin/transaction", map[string]string{
			"type":            "wire",
			"targetAccountId": "acc-1",
			"amount":          "500.00",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, transfers.called)

		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.GreaterOrEqual(t, body.Code, 4000)
		assert.Less(t, body.Code, 5000)
	})
}
