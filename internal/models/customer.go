package models

import "time"

// Customer is a row of the customers table.
type Customer struct {
	CustomerID  string     `db:"customer_id"`
	WorkplaceID string     `db:"workplace_id"`
	Name        string     `db:"name"`
	DeletedAt   *time.Time `db:"deleted_at"`
	AuditFields
}
