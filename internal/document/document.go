package document

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

// ContractView is everything the printed contract shows.
type ContractView struct {
	Contract     *model.Contract
	Client       *model.Client
	Office       *model.Office
	ProductNames map[string]string
	GeneratedAt  time.Time
}

type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("contract.html.tmpl").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"date":  func(t time.Time) string { return t.Format("2006-01-02") },
		"deref": model.Deref,
	}).ParseFS(templatesFS, "templates/contract.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse contract template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(w io.Writer, v ContractView) error {
	if v.Contract == nil {
		return fmt.Errorf("render contract: nil contract")
	}
	return r.tmpl.Execute(w, v)
}
