package request

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	portuse "github.com/faspay-hq/ledger/internal/domain/port/usecase"
	"github.com/faspay-hq/ledger/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time                  { return c.now }
func (c *fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *fixedClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

type fakeRequestRepo struct {
	requests    map[string]*entity.PaymentRequest
	failUpdates int // fail this many Update calls before succeeding
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *entity.PaymentRequest) error {
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (*entity.PaymentRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, errs.ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, req *entity.PaymentRequest) error {
	if r.failUpdates > 0 {
		r.failUpdates--
		return errs.ErrStoreFailure
	}
	if _, ok := r.requests[req.ID]; !ok {
		return errs.ErrRequestNotFound
	}
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *fakeRequestRepo) ListByPayer(ctx context.Context, payerID string) ([]*entity.PaymentRequest, error) {
	var out []*entity.PaymentRequest
	for _, req := range r.requests {
		if req.PayerID == payerID {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeAccountRepo struct {
	ids map[string]bool
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	if !r.ids[id] {
		return nil, errs.ErrAccountNotFound
	}
	clock := &fixedClock{now: time.Now()}
	return entity.NewAccount(id, id, id+"@example.com", entity.RoleUser, "0.00", clock)
}

func (r *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return nil, errs.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error { return nil }
func (r *fakeAccountRepo) Update(ctx context.Context, account *entity.Account) error { return nil }

// fakeTransferUseCase records the transfers it is asked to run. Like the real
// processor it replays a known reference instead of moving money again.
type fakeTransferUseCase struct {
	calls   []portuse.TransferRequest
	settled map[string]*portuse.TransferResult
	moves   int
	err     error
	clock   *fixedClock
}

func (f *fakeTransferUseCase) Transfer(ctx context.Context, req portuse.TransferRequest) (*portuse.TransferResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return &portuse.TransferResult{Success: false, ErrorMessage: f.err.Error(), StatusCode: http.StatusBadRequest}, f.err
	}
	if req.Reference != "" {
		if prior, ok := f.settled[req.Reference]; ok {
			return prior, nil
		}
	}

	f.moves++
	reference := req.Reference
	if reference == "" {
		reference = "REFSETTLED001"
	}
	txn, err := entity.NewTransaction("txn_settled", req.FromAccountID, req.ToAccountID, req.Amount, req.Type, req.Description, reference, f.clock)
	if err != nil {
		return nil, err
	}
	if err := txn.MarkCompleted(f.clock); err != nil {
		return nil, err
	}
	result := &portuse.TransferResult{Success: true, Transaction: txn, StatusCode: http.StatusOK}
	if req.Reference != "" {
		f.settled[req.Reference] = result
	}
	return result, nil
}

func newFixture() (*UseCase, *fakeRequestRepo, *fakeAccountRepo, *fakeTransferUseCase) {
	clock := &fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	requestRepo := &fakeRequestRepo{requests: make(map[string]*entity.PaymentRequest)}
	accountRepo := &fakeAccountRepo{ids: map[string]bool{"acc-a": true, "acc-b": true}}
	transfers := &fakeTransferUseCase{clock: clock, settled: make(map[string]*portuse.TransferResult)}
	uc := NewUseCase(requestRepo, accountRepo, transfers, clock, logger.NewNoopLogger())
	return uc, requestRepo, accountRepo, transfers
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a pending request", func(t *testing.T) {
		uc, repo, _, _ := newFixture()

		req, err := uc.Create(ctx, "acc-a", "acc-b", "25.00", "rent split")
		require.NoError(t, err)
		assert.Equal(t, entity.RequestPending, req.Status)
		assert.Equal(t, "acc-a", req.RequesterID)
		assert.Equal(t, "acc-b", req.PayerID)

		stored, err := repo.GetByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.RequestPending, stored.Status)
	})

	t.Run("Self request is rejected", func(t *testing.T) {
		uc, _, _, _ := newFixture()
		_, err := uc.Create(ctx, "acc-a", "acc-a", "25.00", "")
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("Unknown payer is rejected", func(t *testing.T) {
		uc, _, _, _ := newFixture()
		_, err := uc.Create(ctx, "acc-a", "ghost", "25.00", "")
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})

	t.Run("Invalid amount is rejected", func(t *testing.T) {
		uc, _, _, _ := newFixture()
		_, err := uc.Create(ctx, "acc-a", "acc-b", "0.00", "")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestAcceptRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Accept runs a payer to requester transfer", func(t *testing.T) {
		uc, repo, _, transfers := newFixture()
		created, err := uc.Create(ctx, "acc-a", "acc-b", "25.00", "rent split")
		require.NoError(t, err)

		txn, err := uc.Accept(ctx, created.ID, "acc-b")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, txn.Status)

		require.Len(t, transfers.calls, 1)
		call := transfers.calls[0]
		assert.Equal(t, "acc-b", call.FromAccountID)
		assert.Equal(t, "acc-a", call.ToAccountID)
		assert.Equal(t, "25.00", call.Amount)
		assert.Equal(t, entity.TypeSend, call.Type)
		assert.Equal(t, "req_"+created.ID, call.Reference)

		stored, _ := repo.GetByID(ctx, created.ID)
		assert.Equal(t, entity.RequestAccepted, stored.Status)
	})

	t.Run("Only the payer may accept", func(t *testing.T) {
		uc, _, _, transfers := newFixture()
		created, err := uc.Create(ctx, "acc-a", "acc-b", "25.00", "")
		require.NoError(t, err)

		_, err = uc.Accept(ctx, created.ID, "acc-a")
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
		assert.Empty(t, transfers.calls)
	})

	t.Run("Failed transfer leaves the request pending", func(t *testing.T) {
		uc, repo, _, transfers := newFixture()
		transfers.err = errs.ErrInsufficientFunds

		created, err := uc.Create(ctx, "acc-a", "acc-b", "25.00", "")
		require.NoError(t, err)

		_, err = uc.Accept(ctx, created.ID, "acc-b")
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

		stored, _ := repo.GetByID(ctx, created.ID)
		assert.Equal(t, entity.RequestPending, stored.Status)
	})

	t.Run("Retried accept after a failed status update pays once", func(t *testing.T) {
		uc, repo, _, transfers := newFixture()
		created, err := uc.Create(ctx, "acc-a", "acc-b", "25.00", "")
		require.NoError(t, err)

		// The transfer commits but persisting the accepted status fails.
		repo.failUpdates = 1
		_, err = uc.Accept(ctx, created.ID, "acc-b")
		require.ErrorIs(t, err, errs.ErrStoreFailure)
		assert.Equal(t, 1, transfers.moves)

		stored, _ := repo.GetByID(ctx, created.ID)
		assert.Equal(t, entity.RequestPending, stored.Status)

		// The retry replays the recorded transfer and settles the request.
		txn, err := uc.Accept(ctx, created.ID, "acc-b")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, txn.Status)
		assert.Equal(t, 1, transfers.moves)
		assert.Len(t, transfers.calls, 2)

		stored, _ = repo.GetByID(ctx, created.ID)
		assert.Equal(t, entity.RequestAccepted, stored.Status)
	})

	t.Run("Settled requests cannot settle again", func(t *testing.T) {
		uc, _, _, _ := newFixture()
		created, err := uc.Create(ctx, "acc-a", "acc-b", "25.00", "")
		require.NoError(t, err)

		_, err = uc.Accept(ctx, created.ID, "acc-b")
		require.NoError(t, err)

		_, err = uc.Accept(ctx, created.ID, "acc-b")
		assert.ErrorIs(t, err, errs.ErrRequestNotPending)
	})
}

func TestDeclineRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Decline marks the request declined", func(t *testing.T) {
		uc, repo, _, transfers := newFixture()
		created, err := uc.Create(ctx, "acc-a", "acc-b", "25.00", "")
		require.NoError(t, err)

		require.NoError(t, uc.Decline(ctx, created.ID, "acc-b"))
		stored, _ := repo.GetByID(ctx, created.ID)
		assert.Equal(t, entity.RequestDeclined, stored.Status)
		assert.Empty(t, transfers.calls)
	})

	t.Run("Only the payer may decline", func(t *testing.T) {
		uc, _, _, _ := newFixture()
		created, err := uc.Create(ctx, "acc-a", "acc-b", "25.00", "")
		require.NoError(t, err)

		err = uc.Decline(ctx, created.ID, "acc-a")
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})

	t.Run("Unknown request", func(t *testing.T) {
		uc, _, _, _ := newFixture()
		err := uc.Decline(ctx, "ghost", "acc-b")
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})
}

func TestListIncoming(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := newFixture()

	_, err := uc.Create(ctx, "acc-a", "acc-b", "10.00", "")
	require.NoError(t, err)
	_, err = uc.Create(ctx, "acc-a", "acc-b", "20.00", "")
	require.NoError(t, err)

	incoming, err := uc.ListIncoming(ctx, "acc-b")
	require.NoError(t, err)
	assert.Len(t, incoming, 2)

	none, err := uc.ListIncoming(ctx, "acc-a")
	require.NoError(t, err)
	assert.Empty(t, none)
}
