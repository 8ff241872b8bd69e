package task

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ardiansn/employee-management/internal"
	"github.com/ardiansn/employee-management/internal/core/common/validation"
)

type CreateTaskDTO struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	EmployeeID  int64   `json:"employeeId"`
}

func (d CreateTaskDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(255)
	v.Field("employeeId", d.EmployeeID).Required()
	v.Field("status", d.Status).OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	v.Field("priority", d.Priority).OneOf(internal.ErrCodeInvalidPriority, Priorities...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ToModel coerces the payload into a Task, applying default status and priority.
func (d CreateTaskDTO) ToModel() (*Task, error) {
	var dueDate *time.Time
	if d.DueDate != nil && *d.DueDate != "" {
		parsed, appErr := validation.ParseDate("dueDate", *d.DueDate)
		if appErr != nil {
			return nil, appErr
		}
		dueDate = &parsed
	}

	status := d.Status
	if status == "" {
		status = StatusPending
	}
	priority := d.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	return &Task{
		Title:       d.Title,
		Description: d.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		EmployeeID:  d.EmployeeID,
	}, nil
}

// UpdateTaskDTO has pointer fields throughout: only supplied fields change.
// The kanban drag-and-drop sends just a status here.
type UpdateTaskDTO struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	EmployeeID  *int64  `json:"employeeId,omitempty"`
}

func (d UpdateTaskDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("status", d.Status).OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	v.Field("priority", d.Priority).OneOf(internal.ErrCodeInvalidPriority, Priorities...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Apply writes the supplied fields onto an existing task.
func (d UpdateTaskDTO) Apply(t *Task) error {
	if d.Title != nil {
		t.Title = *d.Title
	}
	if d.Description != nil {
		t.Description = d.Description
	}
	if d.Status != nil {
		t.Status = *d.Status
	}
	if d.Priority != nil {
		t.Priority = *d.Priority
	}
	if d.DueDate != nil {
		if *d.DueDate == "" {
			t.DueDate = nil
		} else {
			parsed, appErr := validation.ParseDate("dueDate", *d.DueDate)
			if appErr != nil {
				return appErr
			}
			t.DueDate = &parsed
		}
	}
	if d.EmployeeID != nil {
		t.EmployeeID = *d.EmployeeID
	}
	return nil
}

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
	"dueDate":   "due_date",
}

type ListQuery struct {
	Page     int
	Limit    int
	Status   string
	Priority string
	SortBy   string
	Order    string
}

func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Page:     1,
		Limit:    10,
		Status:   values.Get("status"),
		Priority: values.Get("priority"),
		SortBy:   "created_at",
		Order:    "desc",
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 && limit <= 100 {
		q.Limit = limit
	}
	if col, ok := sortColumns[values.Get("sortBy")]; ok {
		q.SortBy = col
	}
	if order := strings.ToLower(values.Get("order")); order == "asc" {
		q.Order = "asc"
	}

	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// EmployeeSummary is the reduced employee projection attached to task rows
// in list and mutation responses.
type EmployeeSummary struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// ListItem is one task row carrying the reduced employee projection.
type ListItem struct {
	Task
	Employee *EmployeeSummary `json:"employee,omitempty"`
}

func toListItem(t *Task) ListItem {
	item := ListItem{Task: *t}
	if t.Employee != nil {
		item.Employee = &EmployeeSummary{
			ID:         t.Employee.ID,
			FirstName:  t.Employee.FirstName,
			LastName:   t.Employee.LastName,
			Email:      t.Employee.Email,
			Department: t.Employee.Department,
		}
	}
	item.Task.Employee = nil
	return item
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type Stats struct {
	TotalTasks    int64           `json:"totalTasks"`
	StatusStats   []StatusCount   `json:"statusStats"`
	PriorityStats []PriorityCount `json:"priorityStats"`
	OverdueTasks  int64           `json:"overdueTasks"`
}
