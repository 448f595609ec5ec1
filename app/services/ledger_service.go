package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/repositories"
)

// LedgerService owns dealer balances: accrual happens in OrderService.Approve,
// everything else (account approval, manual payment entry, the admin ledger
// view) lives here.
type LedgerService struct {
	store repositories.Store
}

func NewLedgerService(store repositories.Store) *LedgerService {
	return &LedgerService{store: store}
}

// ApproveDealer lifts the approval gate on a dealer account. Re-applying is a
// no-op.
func (s *LedgerService) ApproveDealer(ctx context.Context, uid string) error {
	user, err := s.store.Users().FindByID(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsApproved {
		return nil
	}
	if err := s.store.Users().SetApproved(ctx, uid); err != nil {
		return fmt.Errorf("failed to approve user %s: %w", uid, err)
	}
	return nil
}

// RecordPayment reduces a dealer's outstanding balance, floored at zero.
// Payments are entered manually by the admin, so a plain last-write-wins
// update is enough here.
func (s *LedgerService) RecordPayment(ctx context.Context, uid string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	user, err := s.store.Users().FindByID(ctx, uid)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	if user == nil {
		return decimal.Zero, ErrUserNotFound
	}

	newBalance := user.CurrentBalance.Sub(amount)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	if err := s.store.Users().UpdateBalance(ctx, uid, newBalance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to record payment for user %s: %w", uid, err)
	}
	return newBalance, nil
}

func (s *LedgerService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *LedgerService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// LedgerFeed mirrors the user list for the admin ledger view. The feed only
// applies deltas pushed into it; whoever drives it (RunFeed, a test) owns the
// subscription lifecycle.
type LedgerFeed struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewLedgerFeed() *LedgerFeed {
	return &LedgerFeed{users: make(map[string]models.User)}
}

func (f *LedgerFeed) Upsert(user models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

func (f *LedgerFeed) Remove(uid string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, uid)
}

func (f *LedgerFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.users)
}

// Snapshot returns the current user list sorted by name.
func (f *LedgerFeed) Snapshot() []models.User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

// RunFeed polls the store and reconciles the feed until ctx is cancelled.
// Blocks; run it on its own goroutine.
func (s *LedgerService) RunFeed(ctx context.Context, feed *LedgerFeed, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		users, err := s.store.Users().FindAll(ctx)
		if err != nil {
			log.Printf("LedgerService.RunFeed: failed to refresh users: %v", err)
		} else {
			seen := make(map[string]bool, len(users))
			for _, u := range users {
				feed.Upsert(u)
				seen[u.ID] = true
			}
			for _, u := range feed.Snapshot() {
				if !seen[u.ID] {
					feed.Remove(u.ID)
				}
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
