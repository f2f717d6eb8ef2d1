package httpserver

import (
	"encoding/csv"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	contractdto "github.com/fekuna/omnipos-rental-service/internal/contract/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	saledto "github.com/fekuna/omnipos-rental-service/internal/sale/dto"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var (
	contractHeader = []string{"number", "status", "client_id", "office_id", "start_date", "end_date",
		"subtotal", "discount", "total", "amount_paid", "balance"}
	saleHeader = []string{"id", "created_at", "status", "office_id", "client_id", "payment_method", "lines", "total"}
)

// dateRange reads from/to (YYYY-MM-DD). to is inclusive, so the returned
// upper bound is the start of the following day.
func dateRange(q url.Values) (from, to *time.Time, err error) {
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, nil, apperr.Invalid("from must be a date (YYYY-MM-DD)")
		}
		from = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, nil, apperr.Invalid("to must be a date (YYYY-MM-DD)")
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	return from, to, nil
}

func (s *Server) exportContracts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, err := dateRange(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contracts, _, err := s.contracts.ListContracts(r.Context(), &contractdto.ContractFilters{
		ClientID: q.Get("client_id"),
		OfficeID: q.Get("office_id"),
		Status:   q.Get("status"),
		From:     from,
		To:       to,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows := make([][]string, 0, len(contracts)+1)
	rows = append(rows, contractHeader)
	for i := range contracts {
		c := &contracts[i]
		rows = append(rows, []string{
			c.Number,
			string(c.Status),
			c.ClientID,
			c.OfficeID,
			c.StartDate.Format(dateLayout),
			c.EndDate.Format(dateLayout),
			c.Subtotal.StringFixed(2),
			c.Discount.StringFixed(2),
			c.Total.StringFixed(2),
			c.AmountPaid.StringFixed(2),
			c.Balance().StringFixed(2),
		})
	}
	s.writeCSV(w, "contracts.csv", rows)
}

func (s *Server) exportSales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, err := dateRange(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sales, _, err := s.sales.ListSales(r.Context(), &saledto.SaleFilters{
		OfficeID: q.Get("office_id"),
		ClientID: q.Get("client_id"),
		Status:   q.Get("status"),
		From:     from,
		To:       to,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows := make([][]string, 0, len(sales)+1)
	rows = append(rows, saleHeader)
	for i := range sales {
		sale := &sales[i]
		rows = append(rows, []string{
			sale.ID,
			sale.CreatedAt.UTC().Format(time.RFC3339),
			string(sale.Status),
			sale.OfficeID,
			model.Deref(sale.ClientID),
			string(sale.PaymentMethod),
			strconv.Itoa(len(sale.Lines)),
			sale.Total.StringFixed(2),
		})
	}
	s.writeCSV(w, "sales.csv", rows)
}

func (s *Server) writeCSV(w http.ResponseWriter, filename string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		s.logger.Error("failed to write csv", zap.String("file", filename), zap.Error(err))
	}
}
