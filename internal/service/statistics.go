package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CategoryTotal is the spending of one category within a month.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// MonthlyStatistics summarises one user's expenses of a calendar month.
type MonthlyStatistics struct {
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	MonthName  string           `json:"monthName"`
	Total      decimal.Decimal  `json:"total"`
	Categories []CategoryTotal  `json:"categories"`
	Expenses   []models.Expense `json:"expenses"`
}

// Statistics groups the user's expenses dated in year/month by category,
// largest total first. Categories compare case-insensitively.
func (s *ExpenseService) Statistics(ctx context.Context, userID int64, year, month int) (MonthlyStatistics, error) {
	if month < 1 || month > 12 {
		return MonthlyStatistics{}, apperr.InvalidArgument("Month must be between 1 and 12")
	}

	all, err := s.List(ctx, storage.ExpenseFilter{UserID: userID})
	if err != nil {
		return MonthlyStatistics{}, err
	}

	stats := MonthlyStatistics{
		Year:       year,
		Month:      month,
		MonthName:  time.Month(month).String(),
		Categories: []CategoryTotal{},
		Expenses:   []models.Expense{},
	}

	byCategory := map[string]*CategoryTotal{}
	var order []string
	for _, e := range all {
		if e.Date == nil || e.Date.Year() != year || int(e.Date.Month()) != month || e.Amount == nil {
			continue
		}
		stats.Expenses = append(stats.Expenses, e)
		stats.Total = stats.Total.Add(*e.Amount)

		key := strings.ToLower(strings.TrimSpace(e.Category))
		ct, ok := byCategory[key]
		if !ok {
			ct = &CategoryTotal{Category: e.Category}
			byCategory[key] = ct
			order = append(order, key)
		}
		ct.Total = ct.Total.Add(*e.Amount)
		ct.Count++
	}

	for _, key := range order {
		ct := *byCategory[key]
		if stats.Total.IsPositive() {
			ct.Percentage = ct.Total.Div(stats.Total).Mul(hundred).Round(2)
		}
		stats.Categories = append(stats.Categories, ct)
	}
	sort.SliceStable(stats.Categories, func(i, j int) bool {
		return stats.Categories[i].Total.GreaterThan(stats.Categories[j].Total)
	})

	return stats, nil
}
