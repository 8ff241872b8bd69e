package employee

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ardiansn/employee-management/internal"
	"github.com/ardiansn/employee-management/internal/core/common/validation"
)

// CreateEmployeeDTO is the request payload for creating an employee. Salary
// is a pointer so an absent field is distinguishable from a zero salary.
type CreateEmployeeDTO struct {
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      string   `json:"email"`
	Phone      *string  `json:"phone,omitempty"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
	Salary     *float64 `json:"salary"`
	HireDate   string   `json:"hireDate"`
	Status     string   `json:"status,omitempty"`
	Avatar     *string  `json:"avatar,omitempty"`
}

func (d CreateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("firstName", d.FirstName).Required().MaxLength(100)
	v.Field("lastName", d.LastName).Required().MaxLength(100)
	v.Field("email", d.Email).Required().MaxLength(255)
	v.Field("department", d.Department).Required().MaxLength(100)
	v.Field("position", d.Position).Required().MaxLength(100)
	v.Field("salary", d.Salary).Required().NonNegative(internal.ErrCodeInvalidSalary)
	v.Field("hireDate", d.HireDate).Required()
	v.Field("status", d.Status).OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ToModel coerces the payload into an Employee, applying the default status.
func (d CreateEmployeeDTO) ToModel() (*Employee, error) {
	hireDate, appErr := validation.ParseDate("hireDate", d.HireDate)
	if appErr != nil {
		return nil, appErr
	}

	status := d.Status
	if status == "" {
		status = StatusActive
	}

	return &Employee{
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Email:      d.Email,
		Phone:      d.Phone,
		Department: d.Department,
		Position:   d.Position,
		Salary:     *d.Salary,
		HireDate:   hireDate,
		Status:     status,
		Avatar:     d.Avatar,
	}, nil
}

// UpdateEmployeeDTO has pointer fields throughout: only supplied fields change.
type UpdateEmployeeDTO struct {
	FirstName  *string  `json:"firstName,omitempty"`
	LastName   *string  `json:"lastName,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Department *string  `json:"department,omitempty"`
	Position   *string  `json:"position,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
	HireDate   *string  `json:"hireDate,omitempty"`
	Status     *string  `json:"status,omitempty"`
	Avatar     *string  `json:"avatar,omitempty"`
}

func (d UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("salary", d.Salary).NonNegative(internal.ErrCodeInvalidSalary)
	v.Field("status", d.Status).OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Apply writes the supplied fields onto an existing employee.
func (d UpdateEmployeeDTO) Apply(e *Employee) error {
	if d.FirstName != nil {
		e.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		e.LastName = *d.LastName
	}
	if d.Email != nil {
		e.Email = *d.Email
	}
	if d.Phone != nil {
		e.Phone = d.Phone
	}
	if d.Department != nil {
		e.Department = *d.Department
	}
	if d.Position != nil {
		e.Position = *d.Position
	}
	if d.Salary != nil {
		e.Salary = *d.Salary
	}
	if d.HireDate != nil {
		hireDate, appErr := validation.ParseDate("hireDate", *d.HireDate)
		if appErr != nil {
			return appErr
		}
		e.HireDate = hireDate
	}
	if d.Status != nil {
		e.Status = *d.Status
	}
	if d.Avatar != nil {
		e.Avatar = d.Avatar
	}
	return nil
}

// sortColumns whitelists client sort keys against real columns.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"firstName":  "first_name",
	"lastName":   "last_name",
	"email":      "email",
	"department": "department",
	"position":   "position",
	"salary":     "salary",
	"hireDate":   "hire_date",
	"status":     "status",
}

type ListQuery struct {
	Page       int
	Limit      int
	Search     string
	Department string
	Status     string
	SortBy     string
	Order      string
}

// ParseListQuery reads pagination and filter params, falling back to the
// defaults the client relies on: page 1, limit 10, newest first.
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Page:       1,
		Limit:      10,
		Search:     values.Get("search"),
		Department: values.Get("department"),
		Status:     values.Get("status"),
		SortBy:     "created_at",
		Order:      "desc",
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

// TaskSummary is the reduced task projection embedded per row in list responses.
type TaskSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// ListItem is one employee row in the paginated list.
type ListItem struct {
	Employee
	Tasks []TaskSummary `json:"tasks"`
}

func toListItem(e *Employee) ListItem {
	tasks := make([]TaskSummary, len(e.Tasks))
	for i, t := range e.Tasks {
		tasks[i] = TaskSummary{
			ID:       t.ID,
			Title:    t.Title,
			Status:   t.Status,
			Priority: t.Priority,
		}
	}
	item := ListItem{Employee: *e, Tasks: tasks}
	item.Employee.Tasks = nil
	return item
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Stats aggregates the employee table. InactiveEmployees is derived as
// total minus active, so on-leave employees land in the inactive bucket;
// StatusStats still reports every distinct status separately.
type Stats struct {
	TotalEmployees    int64             `json:"totalEmployees"`
	ActiveEmployees   int64             `json:"activeEmployees"`
	InactiveEmployees int64             `json:"inactiveEmployees"`
	DepartmentStats   []DepartmentCount `json:"departmentStats"`
	StatusStats       []StatusCount     `json:"statusStats"`
}
