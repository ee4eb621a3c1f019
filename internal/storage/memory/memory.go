// Package memory is an in-process storage.Store for service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
)

// Store keeps every record in maps guarded by one mutex.
type Store struct {
	mu sync.RWMutex

	users      map[int64]models.User
	expenses   map[int64]models.Expense
	payments   map[int64]models.Payment
	incomes    map[int64]models.Income
	savings    map[int64]models.Saving
	activities map[int64]models.Activity

	nextID map[string]int64
	now    func() time.Time
}

var _ storage.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		users:      map[int64]models.User{},
		expenses:   map[int64]models.Expense{},
		payments:   map[int64]models.Payment{},
		incomes:    map[int64]models.Income{},
		savings:    map[int64]models.Saving{},
		activities: map[int64]models.Activity{},
		nextID:     map[string]int64{},
		now:        time.Now,
	}
}

func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func sortedByID[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// Users

func (s *Store) CreateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(u.Email, 0) {
		return models.User{}, storage.ErrConflict
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}
	u.ID = s.id("users")
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) emailTaken(email string, except int64) bool {
	for _, u := range s.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}

func (s *Store) UpdateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[u.ID]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	if s.emailTaken(u.Email, u.ID) {
		return models.User{}, storage.ErrConflict
	}
	u.CreatedAt = old.CreatedAt
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) ListUsers(context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.users), nil
}

// DeleteUser removes the user and, like ON DELETE CASCADE, everything it owns.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	for eid, e := range s.expenses {
		if e.UserID == id {
			s.deleteExpenseLocked(eid)
		}
	}
	for iid, i := range s.incomes {
		if i.UserID == id {
			delete(s.incomes, iid)
		}
	}
	for sid, sv := range s.savings {
		if sv.UserID == id {
			delete(s.savings, sid)
		}
	}
	for aid, a := range s.activities {
		if a.UserID == id {
			delete(s.activities, aid)
		}
	}
	return nil
}

// Expenses

func (s *Store) CreateExpense(_ context.Context, e models.Expense) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[e.UserID]; !ok {
		return models.Expense{}, storage.ErrNotFound
	}
	e.ID = s.id("expenses")
	s.expenses[e.ID] = e
	return e, nil
}

func (s *Store) UpdateExpense(_ context.Context, e models.Expense) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[e.ID]; !ok {
		return models.Expense{}, storage.ErrNotFound
	}
	if _, ok := s.users[e.UserID]; !ok {
		return models.Expense{}, storage.ErrNotFound
	}
	s.expenses[e.ID] = e
	return e, nil
}

func (s *Store) GetExpense(_ context.Context, id int64) (models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[id]
	if !ok {
		return models.Expense{}, storage.ErrNotFound
	}
	return e, nil
}

func (s *Store) ListExpenses(_ context.Context, f storage.ExpenseFilter) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Expense{}
	for _, e := range sortedByID(s.expenses) {
		if f.UserID != 0 && e.UserID != f.UserID {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date == nil || out[j].Date == nil {
			return out[j].Date == nil && out[i].Date != nil
		}
		if out[i].Date.Equal(out[j].Date.Time) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(*out[j].Date)
	})
	return out, nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return storage.ErrNotFound
	}
	s.deleteExpenseLocked(id)
	return nil
}

func (s *Store) deleteExpenseLocked(id int64) {
	delete(s.expenses, id)
	for pid, p := range s.payments {
		if p.ExpenseID == id {
			delete(s.payments, pid)
		}
	}
}

// Payments

func (s *Store) paymentFor(expenseID, except int64) bool {
	for _, p := range s.payments {
		if p.ExpenseID == expenseID && p.ID != except {
			return true
		}
	}
	return false
}

func (s *Store) CreatePayment(_ context.Context, p models.Payment) (models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[p.ExpenseID]; !ok {
		return models.Payment{}, storage.ErrNotFound
	}
	if s.paymentFor(p.ExpenseID, 0) {
		return models.Payment{}, storage.ErrConflict
	}
	p.ID = s.id("payments")
	s.payments[p.ID] = p
	return p, nil
}

func (s *Store) UpdatePayment(_ context.Context, p models.Payment) (models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; !ok {
		return models.Payment{}, storage.ErrNotFound
	}
	if _, ok := s.expenses[p.ExpenseID]; !ok {
		return models.Payment{}, storage.ErrNotFound
	}
	if s.paymentFor(p.ExpenseID, p.ID) {
		return models.Payment{}, storage.ErrConflict
	}
	s.payments[p.ID] = p
	return p, nil
}

func (s *Store) GetPayment(_ context.Context, id int64) (models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return models.Payment{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) GetPaymentByExpense(_ context.Context, expenseID int64) (models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.payments {
		if p.ExpenseID == expenseID {
			return p, nil
		}
	}
	return models.Payment{}, storage.ErrNotFound
}

func (s *Store) ListPayments(context.Context) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.payments), nil
}

func (s *Store) DeletePayment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.payments, id)
	return nil
}

// Incomes

func (s *Store) CreateIncome(_ context.Context, i models.Income) (models.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[i.UserID]; !ok {
		return models.Income{}, storage.ErrNotFound
	}
	i.ID = s.id("incomes")
	s.incomes[i.ID] = i
	return i, nil
}

func (s *Store) UpdateIncome(_ context.Context, i models.Income) (models.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.incomes[i.ID]; !ok {
		return models.Income{}, storage.ErrNotFound
	}
	s.incomes[i.ID] = i
	return i, nil
}

func (s *Store) GetIncome(_ context.Context, id int64) (models.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.incomes[id]
	if !ok {
		return models.Income{}, storage.ErrNotFound
	}
	return i, nil
}

func (s *Store) ListIncomes(context.Context) ([]models.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.incomes), nil
}

func (s *Store) DeleteIncome(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.incomes[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.incomes, id)
	return nil
}

// Savings

func (s *Store) CreateSaving(_ context.Context, sv models.Saving) (models.Saving, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[sv.UserID]; !ok {
		return models.Saving{}, storage.ErrNotFound
	}
	sv.ID = s.id("savings")
	s.savings[sv.ID] = sv
	return sv, nil
}

func (s *Store) UpdateSaving(_ context.Context, sv models.Saving) (models.Saving, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.savings[sv.ID]; !ok {
		return models.Saving{}, storage.ErrNotFound
	}
	s.savings[sv.ID] = sv
	return sv, nil
}

func (s *Store) GetSaving(_ context.Context, id int64) (models.Saving, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sv, ok := s.savings[id]
	if !ok {
		return models.Saving{}, storage.ErrNotFound
	}
	return sv, nil
}

func (s *Store) ListSavings(context.Context) ([]models.Saving, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.savings), nil
}

func (s *Store) DeleteSaving(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.savings[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.savings, id)
	return nil
}

// Activities

func (s *Store) CreateActivity(_ context.Context, a models.Activity) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[a.UserID]; !ok {
		return models.Activity{}, storage.ErrNotFound
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}
	a.ID = s.id("activities")
	s.activities[a.ID] = a
	return a, nil
}

func (s *Store) ListRecentActivities(_ context.Context, userID int64, limit int) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Activity{}
	for _, a := range sortedByID(s.activities) {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
