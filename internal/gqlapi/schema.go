// Package gqlapi exposes customers and invoices through a read-only GraphQL schema.
package gqlapi

import (
	"context"
	"errors"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
)

type scopeKey struct{}

type scope struct {
	workplaceID string
	userID      string
}

// WithScope binds the workplace and caller that resolvers act for.
func WithScope(ctx context.Context, workplaceID, userID string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope{workplaceID: workplaceID, userID: userID})
}

func scopeFrom(ctx context.Context) (scope, error) {
	s, ok := ctx.Value(scopeKey{}).(scope)
	if !ok || s.workplaceID == "" {
		return scope{}, errors.New("graphql: request is not bound to a workplace")
	}
	return s, nil
}

// Resolver answers queries from the customer and invoice services.
type Resolver struct {
	Customers portssvc.CustomerReaderSvc
	Invoices  portssvc.InvoiceReaderSvc
}

// NewSchema builds the schema:
//
//	customer(id: ID!): Customer
//	invoices(customerId: ID, customerName: String, skip: Int = 0, limit: Int = 100): [Invoice!]!
func NewSchema(r *Resolver) (graphql.Schema, error) {
	invoiceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Invoice",
		Fields: graphql.Fields{
			"id":                      invoiceField(graphql.NewNonNull(graphql.ID), func(i *domain.Invoice) any { return i.InvoiceID }),
			"customerId":              invoiceField(graphql.NewNonNull(graphql.ID), func(i *domain.Invoice) any { return i.CustomerID }),
			"amount":                  invoiceField(graphql.NewNonNull(graphql.Float), func(i *domain.Invoice) any { return i.Amount.InexactFloat64() }),
			"currency":                invoiceField(graphql.NewNonNull(graphql.String), func(i *domain.Invoice) any { return i.Currency }),
			"defaultCurrency":         invoiceField(graphql.NewNonNull(graphql.String), func(i *domain.Invoice) any { return i.DefaultCurrency }),
			"amountInDefaultCurrency": invoiceField(graphql.Float, func(i *domain.Invoice) any { return optionalFloat(i.AmountInDefaultCurrency) }),
			"exchangeRate":            invoiceField(graphql.Float, func(i *domain.Invoice) any { return optionalFloat(i.ExchangeRate) }),
			"createdAt":               invoiceField(graphql.NewNonNull(graphql.DateTime), func(i *domain.Invoice) any { return i.CreatedAt }),
		},
	})

	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":        customerField(graphql.NewNonNull(graphql.ID), func(c *domain.Customer) any { return c.CustomerID }),
			"name":      customerField(graphql.NewNonNull(graphql.String), func(c *domain.Customer) any { return c.Name }),
			"createdAt": customerField(graphql.NewNonNull(graphql.DateTime), func(c *domain.Customer) any { return c.CreatedAt }),
			"invoices": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(invoiceType))),
				Resolve: r.customerInvoices,
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"customer": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.customer,
			},
			"invoices": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(invoiceType))),
				Args: graphql.FieldConfigArgument{
					"customerId":   &graphql.ArgumentConfig{Type: graphql.ID},
					"customerName": &graphql.ArgumentConfig{Type: graphql.String},
					"skip":         &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":        &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: domain.DefaultPageLimit},
				},
				Resolve: r.invoices,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

// customer returns null for missing and soft-deleted customers.
func (r *Resolver) customer(p graphql.ResolveParams) (any, error) {
	s, err := scopeFrom(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)

	c, err := r.Customers.GetCustomer(p.Context, s.workplaceID, id, s.userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrAlreadyDeleted) {
			return nil, nil
		}
		return nil, errors.New(apperrors.Message(err))
	}
	return c, nil
}

func (r *Resolver) customerInvoices(p graphql.ResolveParams) (any, error) {
	s, err := scopeFrom(p.Context)
	if err != nil {
		return nil, err
	}
	c, ok := p.Source.(*domain.Customer)
	if !ok {
		return []domain.Invoice{}, nil
	}
	return r.listFor(p.Context, s, &c.CustomerID, domain.Page{Limit: domain.MaxPageLimit})
}

func (r *Resolver) invoices(p graphql.ResolveParams) (any, error) {
	s, err := scopeFrom(p.Context)
	if err != nil {
		return nil, err
	}
	skip, _ := p.Args["skip"].(int)
	limit, _ := p.Args["limit"].(int)
	page := domain.Page{Skip: skip, Limit: limit}

	if id, ok := p.Args["customerId"].(string); ok && id != "" {
		return r.listFor(p.Context, s, &id, page)
	}
	if name, ok := p.Args["customerName"].(string); ok && name != "" {
		c, err := r.Customers.FindFirstCustomerByName(p.Context, s.workplaceID, name, s.userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return []domain.Invoice{}, nil
			}
			return nil, errors.New(apperrors.Message(err))
		}
		return r.listFor(p.Context, s, &c.CustomerID, page)
	}
	return r.listFor(p.Context, s, nil, page)
}

func (r *Resolver) listFor(ctx context.Context, s scope, customerID *string, page domain.Page) ([]domain.Invoice, error) {
	invoices, err := r.Invoices.ListInvoices(ctx, domain.InvoiceFilter{WorkplaceID: s.workplaceID, CustomerID: customerID}, page, s.userID)
	if err != nil {
		return nil, errors.New(apperrors.Message(err))
	}
	return invoices, nil
}

func invoiceField(t graphql.Output, get func(*domain.Invoice) any) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			switch inv := p.Source.(type) {
			case domain.Invoice:
				return get(&inv), nil
			case *domain.Invoice:
				return get(inv), nil
			}
			return nil, nil
		},
	}
}

func customerField(t graphql.Output, get func(*domain.Customer) any) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			if c, ok := p.Source.(*domain.Customer); ok {
				return get(c), nil
			}
			return nil, nil
		},
	}
}

func optionalFloat(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}
