package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/globalpay/internal/models"
	"github.com/example/globalpay/internal/storage"
	"github.com/example/globalpay/pkg/logger"
)

const (
	// localAccount stands in for the single demo user; every payment is
	// debited from it.
	localAccount = "user@globalpay"

	// walletAccount is credited when a scanned intent carries no routing
	// handle.
	walletAccount = "merchant@wallet"
)

// defaultProfile is written on first access and never deleted. The balance
// stays static regardless of transaction activity.
var defaultProfile = models.UserProfile{
	ID:      "user123",
	Name:    "Demo User",
	Email:   "user@example.com",
	UpiID:   "user@globalpay",
	Balance: 10000,
}

var (
	// ErrTransactionNotFound is returned by status updates against an id
	// that was never created.
	ErrTransactionNotFound = errors.New("ledger: transaction not found")

	// ErrStatusNotAllowed is returned when a caller annotation names a
	// status the ledger owns, or targets a terminal transaction.
	ErrStatusNotAllowed = errors.New("ledger: status change not allowed")
)

// Ledger owns the persisted transaction list and the singleton user profile.
// All state lives in the injected Store; every mutation reads the whole
// collection, modifies it in memory and writes it back.
type Ledger struct {
	store storage.Store
	log   *logger.Logger
	delay time.Duration

	// mu serializes read-modify-write cycles within this process. Writers
	// in other processes sharing the store still race; last write wins.
	mu sync.Mutex

	newID func() string
	now   func() time.Time
}

// New constructs a Ledger over store. settleDelay is how long Settle
// simulates the payment rail round trip; tests pass zero.
func New(store storage.Store, log *logger.Logger, settleDelay time.Duration) *Ledger {
	return &Ledger{
		store: store,
		log:   log,
		delay: settleDelay,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// CreateTransaction records a new pending transaction for intent and
// persists it at the head of the list, keeping most-recent-first order.
// A zero-amount intent is permitted.
func (l *Ledger) CreateTransaction(intent models.PaymentIntent) (models.Transaction, error) {
	toAccount := intent.UpiID
	if toAccount == "" {
		toAccount = walletAccount
	}

	txn := models.Transaction{
		ID:          l.newID(),
		PaymentData: intent,
		Status:      models.StatusPending,
		FromAccount: localAccount,
		ToAccount:   toAccount,
		CreatedAt:   l.now().UnixMilli(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	txns := l.readTransactions()
	txns = append([]models.Transaction{txn}, txns...)
	if err := l.writeTransactions(txns); err != nil {
		return models.Transaction{}, err
	}

	return txn, nil
}

// Settle simulates handing txn to a payment rail: it waits the configured
// delay, then marks the transaction completed and replaces the stored entry
// with the matching id. The rail never rejects; the only failure mode is a
// cancelled context.
//
// If no stored entry matches, persisted state is left untouched while the
// returned copy still reflects completion. Callers must create the
// transaction before settling it.
func (l *Ledger) Settle(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	if l.delay > 0 {
		select {
		case <-ctx.Done():
			return txn, ctx.Err()
		case <-time.After(l.delay):
		}
	}

	completedAt := l.now().UnixMilli()
	settled := txn
	settled.Status = models.StatusCompleted
	settled.CompletedAt = &completedAt
	settled.FailureReason = ""

	l.mu.Lock()
	defer l.mu.Unlock()

	txns := l.readTransactions()
	replaced := false
	for i := range txns {
		if txns[i].ID == settled.ID {
			txns[i] = settled
			replaced = true
			break
		}
	}
	if !replaced {
		l.log.Warnf("settled transaction %s is not in the store; persisted state unchanged", settled.ID)
		return settled, nil
	}

	if err := l.writeTransactions(txns); err != nil {
		return settled, err
	}

	return settled, nil
}

// GetByID returns the stored transaction with the given id, or nil when
// none matches.
func (l *Ledger) GetByID(id string) *models.Transaction {
	for _, txn := range l.readTransactions() {
		if txn.ID == id {
			t := txn
			return &t
		}
	}
	return nil
}

// ListAll returns the full persisted list, most-recent-first.
func (l *Ledger) ListAll() []models.Transaction {
	return l.readTransactions()
}

// UpdateStatus applies a caller-controlled transient annotation (verifying
// or processing) to a stored transaction. Terminal statuses belong to
// settlement and are rejected, as is annotating a transaction already in a
// terminal state.
func (l *Ledger) UpdateStatus(id string, status models.TransactionStatus) (*models.Transaction, error) {
	if !status.Transient() {
		return nil, ErrStatusNotAllowed
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	txns := l.readTransactions()
	for i := range txns {
		if txns[i].ID != id {
			continue
		}
		if txns[i].Status.Terminal() {
			return nil, ErrStatusNotAllowed
		}
		txns[i].Status = status
		if err := l.writeTransactions(txns); err != nil {
			return nil, err
		}
		t := txns[i]
		return &t, nil
	}

	return nil, ErrTransactionNotFound
}

// Fail moves a stored transaction to the failed terminal state, recording
// reason. Completed transactions stay completed.
func (l *Ledger) Fail(id, reason string) (*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txns := l.readTransactions()
	for i := range txns {
		if txns[i].ID != id {
			continue
		}
		if txns[i].Status.Terminal() {
			return nil, ErrStatusNotAllowed
		}
		txns[i].Status = models.StatusFailed
		txns[i].FailureReason = reason
		if err := l.writeTransactions(txns); err != nil {
			return nil, err
		}
		t := txns[i]
		return &t, nil
	}

	return nil, ErrTransactionNotFound
}

// EnsureProfile writes the default profile on first access. Subsequent
// calls are no-ops; an existing profile is never overwritten.
func (l *Ledger) EnsureProfile() (models.UserProfile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if profile := l.readProfile(); profile != nil {
		return *profile, nil
	}

	data, err := json.Marshal(defaultProfile)
	if err != nil {
		return models.UserProfile{}, err
	}
	if err := l.store.Set(storage.KeyUserProfile, data); err != nil {
		return models.UserProfile{}, err
	}

	return defaultProfile, nil
}

// GetProfile returns the stored profile, or nil when none exists yet.
func (l *Ledger) GetProfile() *models.UserProfile {
	return l.readProfile()
}

// readTransactions loads the stored list. Absent or corrupt data degrades
// to an empty list so read surfaces stay available.
func (l *Ledger) readTransactions() []models.Transaction {
	data, err := l.store.Get(storage.KeyTransactions)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.log.Warnf("reading transactions: %v", err)
		}
		return nil
	}

	var txns []models.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		l.log.Warnf("stored transactions are corrupt, treating as empty: %v", err)
		return nil
	}
	return txns
}

func (l *Ledger) writeTransactions(txns []models.Transaction) error {
	data, err := json.Marshal(txns)
	if err != nil {
		return err
	}
	return l.store.Set(storage.KeyTransactions, data)
}

func (l *Ledger) readProfile() *models.UserProfile {
	data, err := l.store.Get(storage.KeyUserProfile)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.log.Warnf("reading profile: %v", err)
		}
		return nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		l.log.Warnf("stored profile is corrupt, treating as absent: %v", err)
		return nil
	}
	return &profile
}
