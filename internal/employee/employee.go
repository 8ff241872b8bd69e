package employee

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on-leave"
)

// Statuses lists the accepted employee status values.
var Statuses = []string{StatusActive, StatusInactive, StatusOnLeave}

type Employee struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	FirstName  string    `json:"firstName" gorm:"column:first_name;not null"`
	LastName   string    `json:"lastName" gorm:"column:last_name;not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone      *string   `json:"phone,omitempty"`
	Department string    `json:"department" gorm:"not null"`
	Position   string    `json:"position" gorm:"not null"`
	Salary     float64   `json:"salary" gorm:"not null"`
	HireDate   time.Time `json:"hireDate" gorm:"column:hire_date;type:date;not null"`
	Status     string    `json:"status" gorm:"not null;default:active"`
	Avatar     *string   `json:"avatar,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Tasks []TaskRef `json:"tasks,omitempty" gorm:"foreignKey:EmployeeID"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// TaskRef is the tasks table as seen from the employee side of the
// association. The task package owns the full model.
type TaskRef struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty" gorm:"column:due_date"`
	EmployeeID  int64      `json:"employeeId" gorm:"column:employee_id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (TaskRef) TableName() string {
	return "tasks"
}
