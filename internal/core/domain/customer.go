package domain

// Customer owns zero or more invoices within a workplace.
type Customer struct {
	CustomerID  string `json:"customerID"`
	WorkplaceID string `json:"workplaceID"`
	Name        string `json:"name"`
	AuditFields
	SoftDelete
}
