package server

import (
	"github.com/vietddude/appstore/internal/category"
	"github.com/vietddude/appstore/internal/infra/operation"
)

// SystemStatus represents the overall health state of the service.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
)

// HealthReport contains the full service health report.
type HealthReport struct {
	Status    SystemStatus           `json:"status"`
	Cache     string                 `json:"cache"`
	Fallback  bool                   `json:"fallback"`
	Operation operation.HealthStatus `json:"operation"`
}

func buildReport(categories CategoryService, ops HealthSource) HealthReport {
	report := HealthReport{
		Status:   StatusHealthy,
		Cache:    categories.State().String(),
		Fallback: categories.Fallback(),
	}
	if ops != nil {
		report.Operation = ops.GetHealth()
	}

	// Serving defaults or a failing upstream both count as degraded
	if report.Fallback && categories.State() == category.CellResolved {
		report.Status = StatusDegraded
	}
	if ops != nil && !report.Operation.Available {
		report.Status = StatusDegraded
	}
	return report
}
