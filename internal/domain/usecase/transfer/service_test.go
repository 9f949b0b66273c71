package transfer

import (
	"context"
	"net/http"
	"testing"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceFixture() (*Service, *memStore, *fixedClock) {
	clock := newFixedClock()
	store := newMemStore()
	svc := NewService(store, store.GetTransactionRepository(context.Background()), clock, logger.NewNoopLogger())
	return svc, store, clock
}

func TestServiceTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful transfer returns 200 with the completed transaction", func(t *testing.T) {
		svc, store, clock := newServiceFixture()
		store.putAccount(newTestAccount("acc-a", "John", entity.RoleUser, "100.00", clock))
		store.putAccount(newTestAccount("acc-b", "Sarah", entity.RoleUser, "50.00", clock))

		result, err := svc.Transfer(ctx, portuse.TransferRequest{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        "30.00",
			Type:          entity.TypeSend,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Equal(t, entity.StatusCompleted, result.Transaction.Status)
	})

	t.Run("Same source and destination is rejected", func(t *testing.T) {
		svc, _, _ := newServiceFixture()

		result, err := svc.Transfer(ctx, portuse.TransferRequest{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-a",
			Amount:        "30.00",
			Type:          entity.TypeSend,
		})

		require.Error(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	})

	t.Run("Unknown transfer type is rejected", func(t *testing.T) {
		svc, _, _ := newServiceFixture()

		result, err := svc.Transfer(ctx, portuse.TransferRequest{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        "30.00",
			Type:          entity.TransferType("wire"),
		})

		require.ErrorIs(t, err, errs.ErrInvalidTransferType)
		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	})

	t.Run("Duplicate reference replays the recorded outcome", func(t *testing.T) {
		svc, store, clock := newServiceFixture()
		store.putAccount(newTestAccount("acc-a", "John", entity.RoleUser, "100.00", clock))
		store.putAccount(newTestAccount("acc-b", "Sarah", entity.RoleUser, "50.00", clock))

		first, err := svc.Transfer(ctx, portuse.TransferRequest{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        "30.00",
			Type:          entity.TypeSend,
			Reference:     "REFRETRY00001",
		})
		require.NoError(t, err)

		second, err := svc.Transfer(ctx, portuse.TransferRequest{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        "30.00",
			Type:          entity.TypeSend,
			Reference:     "REFRETRY00001",
		})
		require.NoError(t, err)

		assert.True(t, second.Success)
		assert.Equal(t, http.StatusOK, second.StatusCode)
		assert.Equal(t, first.Transaction.ID, second.Transaction.ID)

		// Money moved exactly once.
		assert.Equal(t, int64(7000), store.balance("acc-a"))
		assert.Equal(t, int64(8000), store.balance("acc-b"))
	})

	t.Run("Reference with only a failed record can be retried", func(t *testing.T) {
		svc, store, clock := newServiceFixture()
		store.putAccount(newTestAccount("acc-a", "John", entity.RoleUser, "100.00", clock))
		store.putAccount(newTestAccount("acc-b", "Sarah", entity.RoleUser, "50.00", clock))

		failed, err := entity.NewTransaction("txn_failed1", "acc-a", "acc-b", "30.00", entity.TypeSend, "", "REFRETRY00002", clock)
		require.NoError(t, err)
		require.NoError(t, failed.MarkFailed(clock, "store failure"))
		store.putTransaction(failed)

		retry, err := svc.Transfer(ctx, portuse.TransferRequest{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        "30.00",
			Type:          entity.TypeSend,
			Reference:     "REFRETRY00002",
		})
		require.NoError(t, err)
		assert.True(t, retry.Success)
		assert.Equal(t, entity.StatusCompleted, retry.Transaction.Status)
		assert.NotEqual(t, "txn_failed1", retry.Transaction.ID)

		assert.Equal(t, int64(7000), store.balance("acc-a"))
		assert.Equal(t, int64(8000), store.balance("acc-b"))

		// Once a live record exists, the reference replays it.
		replay, err := svc.Transfer(ctx, portuse.TransferRequest{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        "30.00",
			Type:          entity.TypeSend,
			Reference:     "REFRETRY00002",
		})
		require.NoError(t, err)
		assert.Equal(t, retry.Transaction.ID, replay.Transaction.ID)
		assert.Equal(t, int64(7000), store.balance("acc-a"))
	})

	t.Run("Error to status mapping", func(t *testing.T) {
		cases := []struct {
			name       string
			setup      func(store *memStore, clock *fixedClock)
			req        portuse.TransferRequest
			wantStatus int
		}{
			{
				name:  "missing account maps to 404",
				setup: func(store *memStore, clock *fixedClock) {},
				req: portuse.TransferRequest{
					FromAccountID: "ghost-1",
					ToAccountID:   "ghost-2",
					Amount:        "10.00",
					Type:          entity.TypeSend,
				},
				wantStatus: http.StatusNotFound,
			},
			{
				name: "insufficient funds maps to 400",
				setup: func(store *memStore, clock *fixedClock) {
					store.putAccount(newTestAccount("acc-a", "John", entity.RoleUser, "1.00", clock))
					store.putAccount(newTestAccount("acc-b", "Sarah", entity.RoleUser, "0.00", clock))
				},
				req: portuse.TransferRequest{
					FromAccountID: "acc-a",
					ToAccountID:   "acc-b",
					Amount:        "10.00",
					Type:          entity.TypeSend,
				},
				wantStatus: http.StatusBadRequest,
			},
			{
				name: "frozen account maps to 403",
				setup: func(store *memStore, clock *fixedClock) {
					store.putAccount(newTestAccount("acc-a", "John", entity.RoleUser, "100.00", clock))
					frozen := newTestAccount("acc-b", "Sarah", entity.RoleUser, "0.00", clock)
					frozen.Deactivate(clock)
					store.putAccount(frozen)
				},
				req: portuse.TransferRequest{
					FromAccountID: "acc-a",
					ToAccountID:   "acc-b",
					Amount:        "10.00",
					Type:          entity.TypeSend,
				},
				wantStatus: http.StatusForbidden,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc, store, clock := newServiceFixture()
				tc.setup(store, clock)

				result, err := svc.Transfer(context.Background(), tc.req)
				require.Error(t, err)
				assert.False(t, result.Success)
				assert.Equal(t, tc.wantStatus, result.StatusCode)
				assert.NotEmpty(t, result.ErrorMessage)
			})
		}
	})
}
