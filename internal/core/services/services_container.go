package services

import (
	"github.com/SscSPs/invoice_analytics/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/platform/config"
	"github.com/SscSPs/invoice_analytics/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provider providers.RateProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// One resolver per process, shared by every service that converts amounts.
	container.ExchangeRate = NewExchangeRateService(repos.RateCacheRepo, provider, WithRateMetrics(m))

	workplace := NewWorkplaceService(repos.WorkplaceRepo, container.ExchangeRate, cfg.DefaultCurrency)
	container.Workplace = workplace

	container.Customer = NewCustomerService(repos.CustomerRepo, workplace)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.CustomerRepo, container.ExchangeRate, workplace, workplace)
	container.Analytics = NewAnalyticsService(repos.InvoiceRepo, container.ExchangeRate, workplace, workplace)

	return container
}
