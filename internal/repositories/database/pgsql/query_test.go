package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildInvoiceFilter(t *testing.T) {
	where, args := buildInvoiceFilter(domain.InvoiceFilter{WorkplaceID: "w1"})
	assert.Equal(t, "WHERE i.workplace_id = $1 AND i.deleted_at IS NULL", where)
	assert.Equal(t, []any{"w1"}, args)

	customerID := "c1"
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	where, args = buildInvoiceFilter(domain.InvoiceFilter{
		WorkplaceID: "w1",
		CustomerID:  &customerID,
		Start:       &start,
		End:         &end,
	})
	assert.Equal(t,
		"WHERE i.workplace_id = $1 AND i.deleted_at IS NULL AND i.customer_id = $2 AND i.created_at >= $3 AND i.created_at <= $4",
		where)
	assert.Equal(t, []any{"w1", "c1", start, end}, args)
}

func TestBuildInvoiceFilterEndOnly(t *testing.T) {
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	where, args := buildInvoiceFilter(domain.InvoiceFilter{WorkplaceID: "w1", End: &end})
	assert.Equal(t, "WHERE i.workplace_id = $1 AND i.deleted_at IS NULL AND i.created_at <= $2", where)
	assert.Len(t, args, 2)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_off\\`, escapeLike(`100% _off\`))
	assert.Equal(t, "Acme", escapeLike("Acme"))
}
