package mapping

import (
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/SscSPs/invoice_analytics/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		WorkplaceID: d.WorkplaceID,
		Name:        d.Name,
		DeletedAt:   d.DeletedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		WorkplaceID: m.WorkplaceID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		SoftDelete:  domain.SoftDelete{DeletedAt: m.DeletedAt},
	}
}

// ToDomainCustomers converts a slice of model Customers
func ToDomainCustomers(ms []models.Customer) []domain.Customer {
	out := make([]domain.Customer, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCustomer(m)
	}
	return out
}
