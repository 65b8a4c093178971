package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/services/antifraud"
	"github.com/shopspring/decimal"
)

// memoryRepo is an in-memory store with the same semantics as the Postgres
// repository. readDelay widens the gap between the reads and the write;
// beforeCount, when set, runs inside every CountSince.
type memoryRepo struct {
	mu          sync.Mutex
	txs         map[int64]*models.Transaction
	users       map[int64]*models.User
	journal     []string
	readDelay   time.Duration
	beforeCount func()
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		txs:   make(map[int64]*models.Transaction),
		users: make(map[int64]*models.User),
	}
}

func (m *memoryRepo) HasPriorChargeback(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	return ok && u.HasPriorChargeback, nil
}

func (m *memoryRepo) CountSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	m.mu.Lock()
	count := 0
	for _, t := range m.txs {
		if t.UserID == userID && t.Timestamp.After(since) {
			count++
		}
	}
	m.mu.Unlock()
	if m.beforeCount != nil {
		m.beforeCount()
	}
	time.Sleep(m.readDelay)
	return count, nil
}

func (m *memoryRepo) SumSince(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := decimal.Zero
	for _, t := range m.txs {
		if t.UserID == userID && t.Timestamp.After(since) {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (m *memoryRepo) InsertApproved(ctx context.Context, t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txs[t.TransactionID]; ok {
		return fmt.Errorf("%w: %d", antifraud.ErrDuplicateTransaction, t.TransactionID)
	}
	cp := *t
	m.txs[t.TransactionID] = &cp
	if _, ok := m.users[t.UserID]; !ok {
		m.users[t.UserID] = &models.User{UserID: t.UserID}
	}
	m.journal = append(m.journal, fmt.Sprintf("insert:%d", t.TransactionID))
	return nil
}

func (m *memoryRepo) BulkInsert(ctx context.Context, txs []*models.Transaction) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inserted := 0
	for _, t := range txs {
		if _, ok := m.txs[t.TransactionID]; ok {
			continue
		}
		cp := *t
		m.txs[t.TransactionID] = &cp
		if _, ok := m.users[t.UserID]; !ok {
			m.users[t.UserID] = &models.User{UserID: t.UserID}
		}
		inserted++
	}
	return inserted, nil
}

func (m *memoryRepo) TransactionOwner(ctx context.Context, transactionID int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txs[transactionID]
	if !ok {
		return 0, false, nil
	}
	return t.UserID, true, nil
}

func (m *memoryRepo) ApplyChargeback(ctx context.Context, transactionID int64, hasChargeback bool) (*models.ChargebackResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := &models.ChargebackResult{TransactionID: transactionID}
	t, ok := m.txs[transactionID]
	if !ok {
		return res, nil
	}
	t.ChargedBack = t.ChargedBack || hasChargeback
	m.journal = append(m.journal, fmt.Sprintf("chargeback:%d", transactionID))
	res.Found = true
	res.UserID = t.UserID
	if hasChargeback {
		u, ok := m.users[t.UserID]
		if !ok {
			u = &models.User{UserID: t.UserID}
			m.users[t.UserID] = u
		}
		u.HasPriorChargeback = true
		res.UserFlagged = true
	}
	return res, nil
}

func (m *memoryRepo) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = make(map[int64]*models.Transaction)
	m.users = make(map[int64]*models.User)
	return nil
}

func (m *memoryRepo) stored(transactionID int64) (*models.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txs[transactionID]
	return t, ok
}

// writes lists the committed inserts and chargebacks in order
func (m *memoryRepo) writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.journal...)
}

func (m *memoryRepo) userFlagged(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	return ok && u.HasPriorChargeback
}
