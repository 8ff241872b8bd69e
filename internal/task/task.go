package task

import (
	"time"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var (
	Statuses   = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
)

type Task struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status" gorm:"not null;default:pending"`
	Priority    string     `json:"priority" gorm:"not null;default:medium"`
	DueDate     *time.Time `json:"dueDate,omitempty" gorm:"column:due_date"`
	EmployeeID  int64      `json:"employeeId" gorm:"column:employee_id;not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Employee *EmployeeRef `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether the task counts toward the overdue stat: a due
// date strictly in the past and a status other than completed. Cancelled
// tasks with a past due date still count.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now) && t.Status != StatusCompleted
}

// EmployeeRef is the employees table as seen from the task side of the
// association. The employee package owns the full model.
type EmployeeRef struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	FirstName  string    `json:"firstName" gorm:"column:first_name"`
	LastName   string    `json:"lastName" gorm:"column:last_name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
