package services

import (
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/shopspring/decimal"
)

// Workload bucket labels, by active-task count (upper bounds inclusive)
const (
	LoadIdle       = "Idle"       // 0
	LoadLight      = "Light"      // 1-2
	LoadModerate   = "Moderate"   // 3-5
	LoadHeavy      = "Heavy"      // 6-8
	LoadOverloaded = "Overloaded" // 9+
)

// EmployeeWorkload is one engineer's task counts and load classification
type EmployeeWorkload struct {
	EmployeeID     uint   `json:"employee_id"`
	EmployeeCode   string `json:"employee_code"`
	Name           string `json:"name"`
	ActiveTasks    int    `json:"active_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	Load           string `json:"load"`
}

// WorkloadSummary aggregates workload across the active engineer roster
type WorkloadSummary struct {
	TotalEmployees   int                `json:"total_employees"`
	BusyEmployees    int                `json:"busy_employees"`
	IdleEmployees    int                `json:"idle_employees"`
	TotalActiveTasks int                `json:"total_active_tasks"`
	MeanActiveTasks  decimal.Decimal    `json:"mean_active_tasks"` // mean over busy engineers, 2dp
	Busiest          *EmployeeWorkload  `json:"busiest,omitempty"`
	Workloads        []EmployeeWorkload `json:"workloads"`
}

// ClassifyLoad buckets an active-task count into a load label
func ClassifyLoad(activeTasks int) string {
	switch {
	case activeTasks == 0:
		return LoadIdle
	case activeTasks <= 2:
		return LoadLight
	case activeTasks <= 5:
		return LoadModerate
	case activeTasks <= 8:
		return LoadHeavy
	default:
		return LoadOverloaded
	}
}

// ComputeWorkload builds the per-engineer and aggregate workload view from
// the active roster and the current order item set. Inactive employees are
// skipped. The busiest engineer is the first one encountered with the
// maximum count; employee iteration order decides ties.
func ComputeWorkload(employees []models.Employee, items []models.OrderItem) WorkloadSummary {
	active := make(map[uint]int)
	completed := make(map[uint]int)
	for _, item := range items {
		if item.AssignedEmployeeID == nil {
			continue
		}
		id := *item.AssignedEmployeeID
		if item.IsActive() {
			active[id]++
		} else if item.Status == models.ItemStatusCompleted {
			completed[id]++
		}
	}

	summary := WorkloadSummary{Workloads: []EmployeeWorkload{}}
	for _, e := range employees {
		if !e.IsActive {
			continue
		}
		w := EmployeeWorkload{
			EmployeeID:     e.ID,
			EmployeeCode:   e.EmployeeCode,
			Name:           e.Name,
			ActiveTasks:    active[e.ID],
			CompletedTasks: completed[e.ID],
			Load:           ClassifyLoad(active[e.ID]),
		}
		summary.Workloads = append(summary.Workloads, w)

		summary.TotalEmployees++
		summary.TotalActiveTasks += w.ActiveTasks
		if w.ActiveTasks > 0 {
			summary.BusyEmployees++
		} else {
			summary.IdleEmployees++
		}
		if summary.Busiest == nil || w.ActiveTasks > summary.Busiest.ActiveTasks {
			busiest := w
			summary.Busiest = &busiest
		}
	}

	if summary.BusyEmployees > 0 {
		summary.MeanActiveTasks = decimal.NewFromInt(int64(summary.TotalActiveTasks)).
			Div(decimal.NewFromInt(int64(summary.BusyEmployees))).Round(2)
	} else {
		summary.MeanActiveTasks = decimal.Zero
		summary.Busiest = nil
	}

	return summary
}
