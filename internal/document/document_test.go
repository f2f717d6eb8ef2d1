package document

import (
	"bytes"
	"testing"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLRenderer_Render(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	c := &model.Contract{
		Number:     "C-20261019-a1b2c3",
		Status:     model.ContractPaid,
		StartDate:  time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
		Subtotal:   decimal.NewFromInt(160),
		Discount:   decimal.NewFromInt(10),
		Total:      decimal.NewFromInt(150),
		AmountPaid: decimal.NewFromInt(150),
		Items: []model.ContractItem{{
			ProductID: "tent",
			Quantity:  2,
			UnitPrice: decimal.NewFromInt(25),
			Days:      3,
			Subtotal:  decimal.NewFromInt(160),
			Services:  []model.ItemService{{Name: "Delivery", Price: decimal.NewFromInt(10)}},
		}},
	}
	phone := "555-0101"

	var buf bytes.Buffer
	err = r.Render(&buf, ContractView{
		Contract:     c,
		Client:       &model.Client{FullName: "Ana <Pérez>", DocumentNumber: "30111222", Phone: &phone},
		Office:       &model.Office{Name: "Centro", Address: "Av. 1"},
		ProductNames: map[string]string{"tent": "Tent 4p"},
		GeneratedAt:  time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "C-20261019-a1b2c3")
	assert.Contains(t, out, "Tent 4p")
	assert.Contains(t, out, "Delivery (10.00)")
	assert.Contains(t, out, "Total: 150.00")
	assert.Contains(t, out, "Balance: 0.00")
	assert.Contains(t, out, "2026-10-19 to 2026-10-22")
	assert.Contains(t, out, "Ana &lt;Pérez&gt;")
	assert.Contains(t, out, "tel. 555-0101")
}

func TestHTMLRenderer_NilContract(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, ContractView{}))
}
