package dto

import "github.com/SscSPs/invoice_analytics/internal/core/domain"

// PageParams binds skip/limit query parameters.
type PageParams struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=1,max=1000"`
}

// ToPage converts the binding to a domain page.
func (p PageParams) ToPage() domain.Page {
	return domain.Page{Skip: p.Skip, Limit: p.Limit}.Normalize()
}
