package transfer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/faspay-hq/ledger/internal/domain/entity"
	errs "github.com/faspay-hq/ledger/internal/domain/error"
	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/faspay-hq/ledger/internal/domain/port/persistence"
)

// fixedClock is a TimeProvider pinned to one instant
type fixedClock struct {
	now time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time                  { return c.now }
func (c *fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *fixedClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// txMarker marks a context as transactional for the in-memory unit of work
type txMarker struct{}

// memStore is an in-memory ledger with snapshot transaction semantics.
// Begin stages a copy of all state; Commit publishes the staged copy;
// Rollback discards it. Fault injection fields simulate store failures.
type memStore struct {
	accounts     map[string]*entity.Account
	transactions map[string]*entity.Transaction

	staged *stagedState

	beginErr             error
	commitErr            error
	failAccountUpdateIDs map[string]bool
	failTxnCreate        bool
	failTxnUpdate        bool
}

type stagedState struct {
	accounts     map[string]*entity.Account
	transactions map[string]*entity.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		accounts:             make(map[string]*entity.Account),
		transactions:         make(map[string]*entity.Transaction),
		failAccountUpdateIDs: make(map[string]bool),
	}
}

func (s *memStore) putAccount(a *entity.Account) {
	copied := *a
	s.accounts[a.ID] = &copied
}

func (s *memStore) putTransaction(t *entity.Transaction) {
	copied := *t
	s.transactions[t.ID] = &copied
}

func (s *memStore) balance(id string) int64 {
	return s.accounts[id].Balance()
}

func (s *memStore) totalBalance() int64 {
	var sum int64
	for _, a := range s.accounts {
		sum += a.Balance()
	}
	return sum
}

func (s *memStore) committedTransactions() []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t)
	}
	return out
}

// Begin implements persistence.UnitOfWork
func (s *memStore) Begin(ctx context.Context) (context.Context, error) {
	if s.beginErr != nil {
		return ctx, s.beginErr
	}
	staged := &stagedState{
		accounts:     make(map[string]*entity.Account, len(s.accounts)),
		transactions: make(map[string]*entity.Transaction, len(s.transactions)),
	}
	for id, a := range s.accounts {
		copied := *a
		staged.accounts[id] = &copied
	}
	for id, t := range s.transactions {
		copied := *t
		staged.transactions[id] = &copied
	}
	s.staged = staged
	return context.WithValue(ctx, txMarker{}, true), nil
}

// Commit implements persistence.UnitOfWork
func (s *memStore) Commit(ctx context.Context) error {
	if s.staged == nil {
		return fmt.Errorf("no transaction in progress")
	}
	if s.commitErr != nil {
		s.staged = nil
		return s.commitErr
	}
	s.accounts = s.staged.accounts
	s.transactions = s.staged.transactions
	s.staged = nil
	return nil
}

// Rollback implements persistence.UnitOfWork
func (s *memStore) Rollback(ctx context.Context) error {
	s.staged = nil
	return nil
}

// GetAccountRepository implements persistence.UnitOfWork
func (s *memStore) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return &memAccountRepo{store: s, inTx: inTx(ctx)}
}

// GetTransactionRepository implements persistence.UnitOfWork
func (s *memStore) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return &memTransactionRepo{store: s, inTx: inTx(ctx)}
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txMarker{}).(bool)
	return v
}

func (s *memStore) accountsView(tx bool) map[string]*entity.Account {
	if tx && s.staged != nil {
		return s.staged.accounts
	}
	return s.accounts
}

func (s *memStore) transactionsView(tx bool) map[string]*entity.Transaction {
	if tx && s.staged != nil {
		return s.staged.transactions
	}
	return s.transactions
}

type memAccountRepo struct {
	store *memStore
	inTx  bool
}

func (r *memAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	a, ok := r.store.accountsView(r.inTx)[id]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	for _, a := range r.store.accountsView(r.inTx) {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, errs.ErrAccountNotFound
}

func (r *memAccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *memAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	view := r.store.accountsView(r.inTx)
	if _, exists := view[account.ID]; exists {
		return errs.ErrDuplicateAccount
	}
	copied := *account
	view[account.ID] = &copied
	return nil
}

func (r *memAccountRepo) Update(ctx context.Context, account *entity.Account) error {
	if r.store.failAccountUpdateIDs[account.ID] {
		return fmt.Errorf("%w: injected update failure", errs.ErrStoreFailure)
	}
	view := r.store.accountsView(r.inTx)
	if _, exists := view[account.ID]; !exists {
		return errs.ErrAccountNotFound
	}
	copied := *account
	view[account.ID] = &copied
	return nil
}

type memTransactionRepo struct {
	store *memStore
	inTx  bool
}

func (r *memTransactionRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	if r.store.failTxnCreate {
		return fmt.Errorf("%w: injected create failure", errs.ErrStoreFailure)
	}
	view := r.store.transactionsView(r.inTx)
	for _, existing := range view {
		// Mirrors the partial unique index: failed rows keep their
		// reference without blocking a new attempt.
		if existing.Reference == txn.Reference && existing.Status != entity.StatusFailed {
			return errs.ErrDuplicateReference
		}
	}
	copied := *txn
	view[txn.ID] = &copied
	return nil
}

func (r *memTransactionRepo) Update(ctx context.Context, txn *entity.Transaction) error {
	if r.store.failTxnUpdate {
		return fmt.Errorf("%w: injected update failure", errs.ErrStoreFailure)
	}
	view := r.store.transactionsView(r.inTx)
	if _, exists := view[txn.ID]; !exists {
		return errs.ErrTransactionNotFound
	}
	copied := *txn
	view[txn.ID] = &copied
	return nil
}

func (r *memTransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	t, ok := r.store.transactionsView(r.inTx)[id]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *memTransactionRepo) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var failed *entity.Transaction
	for _, t := range r.store.transactionsView(r.inTx) {
		if t.Reference != reference {
			continue
		}
		if t.Status != entity.StatusFailed {
			copied := *t
			return &copied, nil
		}
		failed = t
	}
	if failed != nil {
		copied := *failed
		return &copied, nil
	}
	return nil, errs.ErrTransactionNotFound
}

func (r *memTransactionRepo) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	for _, t := range r.store.transactionsView(r.inTx) {
		if t.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTransactionRepo) ListByAccount(ctx context.Context, accountID string, limit int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.store.transactionsView(r.inTx) {
		if t.FromAccountID == accountID || t.ToAccountID == accountID {
			copied := *t
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// newTestAccount builds an account with a preset balance
func newTestAccount(id, name string, role entity.Role, balance string, clock coreport.TimeProvider) *entity.Account {
	acct, err := entity.NewAccount(id, name, name+"@example.com", role, balance, clock)
	if err != nil {
		panic(err)
	}
	return acct
}
