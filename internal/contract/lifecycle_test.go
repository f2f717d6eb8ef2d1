package contract

import (
	"regexp"
	"testing"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var allStatuses = []model.ContractStatus{
	model.ContractBudgeted,
	model.ContractDeposited,
	model.ContractPaid,
	model.ContractActive,
	model.ContractExpired,
	model.ContractFinished,
	model.ContractReturnedOK,
	model.ContractReturnedFailed,
	model.ContractCanceled,
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]model.ContractStatus]bool{
		{model.ContractBudgeted, model.ContractDeposited}:      true,
		{model.ContractBudgeted, model.ContractPaid}:           true,
		{model.ContractBudgeted, model.ContractCanceled}:       true,
		{model.ContractDeposited, model.ContractPaid}:          true,
		{model.ContractDeposited, model.ContractCanceled}:      true,
		{model.ContractPaid, model.ContractActive}:             true,
		{model.ContractPaid, model.ContractCanceled}:           true,
		{model.ContractActive, model.ContractExpired}:          true,
		{model.ContractActive, model.ContractFinished}:         true,
		{model.ContractExpired, model.ContractFinished}:        true,
		{model.ContractFinished, model.ContractReturnedOK}:     true,
		{model.ContractFinished, model.ContractReturnedFailed}: true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]model.ContractStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestIsOpen(t *testing.T) {
	assert.True(t, IsOpen(model.ContractBudgeted))
	assert.True(t, IsOpen(model.ContractExpired))
	assert.True(t, IsOpen(model.ContractFinished))
	assert.False(t, IsOpen(model.ContractReturnedOK))
	assert.False(t, IsOpen(model.ContractReturnedFailed))
	assert.False(t, IsOpen(model.ContractCanceled))
}

func TestRentalDays(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, time.UTC) }

	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"same day", day(1, 9), day(1, 18), 1},
		{"end before start", day(5, 0), day(1, 0), 1},
		{"three nights", day(1, 0), day(4, 0), 3},
		{"hours ignored", day(1, 23), day(2, 1), 1},
		{"across month", time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC), day(2, 0), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(tt.start, tt.end))
		})
	}
}

func TestRecalculate(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name          string
		discount      string
		items         []model.ContractItem
		wantSubtotals []string
		wantSubtotal  string
		wantTotal     string
	}{
		{
			name:     "units times days plus services",
			discount: "0",
			items: []model.ContractItem{
				{Quantity: 2, UnitPrice: d("12.50"), Services: []model.ItemService{{Price: d("5")}, {Price: d("7.25")}}},
				{Quantity: 1, UnitPrice: d("40")},
			},
			wantSubtotals: []string{"87.25", "120"},
			wantSubtotal:  "207.25",
			wantTotal:     "207.25",
		},
		{
			name:          "discount applied",
			discount:      "20",
			items:         []model.ContractItem{{Quantity: 1, UnitPrice: d("10")}},
			wantSubtotals: []string{"30"},
			wantSubtotal:  "30",
			wantTotal:     "10",
		},
		{
			name:          "discount larger than subtotal clamps to zero",
			discount:      "500",
			items:         []model.ContractItem{{Quantity: 1, UnitPrice: d("10")}},
			wantSubtotals: []string{"30"},
			wantSubtotal:  "30",
			wantTotal:     "0",
		},
		{
			name:         "no items",
			discount:     "0",
			wantSubtotal: "0",
			wantTotal:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &model.Contract{
				StartDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC),
				Discount:  d(tt.discount),
				Items:     tt.items,
			}
			Recalculate(c)

			for i, want := range tt.wantSubtotals {
				assert.True(t, d(want).Equal(c.Items[i].Subtotal), "item %d subtotal = %s", i, c.Items[i].Subtotal)
				assert.Equal(t, 3, c.Items[i].Days)
			}
			assert.True(t, d(tt.wantSubtotal).Equal(c.Subtotal), "subtotal = %s", c.Subtotal)
			assert.True(t, d(tt.wantTotal).Equal(c.Total), "total = %s", c.Total)
		})
	}
}

func TestNewNumber(t *testing.T) {
	n := NewNumber(time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^C-20261019-[0-9a-f]{6}$`), n)
	assert.NotEqual(t, n, NewNumber(time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)))
}
