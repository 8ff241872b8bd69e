package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ardiansn/employee-management/internal"
	"github.com/ardiansn/employee-management/internal/task"
	"gorm.io/gorm"
)

// TaskRepository implements the task.Repository interface using GORM
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.Repository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *task.Task) error {
	return r.db.Omit("Employee").Create(t).Error
}

// GetByID loads the task with the full employee record. Returns nil without
// error when the id does not exist.
func (r *TaskRepository) GetByID(id int64) (*task.Task, error) {
	var t task.Task
	err := r.db.Preload("Employee").Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) List(q task.ListQuery) ([]*task.Task, int64, error) {
	base := r.db.Model(&task.Task{})

	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}
	if q.Priority != "" {
		base = base.Where("priority = ?", q.Priority)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []*task.Task
	err := base.
		Preload("Employee").
		Order(fmt.Sprintf("%s %s", q.SortBy, strings.ToUpper(q.Order))).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListByEmployee returns all of one employee's tasks, newest first,
// unpaginated.
func (r *TaskRepository) ListByEmployee(employeeID int64) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(t *task.Task) error {
	return r.db.Omit("Employee").Save(t).Error
}

func (r *TaskRepository) Delete(id int64) error {
	result := r.db.Delete(&task.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&task.Task{}).Count(&count).Error
	return count, err
}

func (r *TaskRepository) GroupByStatus() ([]task.StatusCount, error) {
	var counts []task.StatusCount
	err := r.db.Model(&task.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *TaskRepository) GroupByPriority() ([]task.PriorityCount, error) {
	var counts []task.PriorityCount
	err := r.db.Model(&task.Task{}).
		Select("priority, COUNT(*) as count").
		Group("priority").
		Order("priority ASC").
		Scan(&counts).Error
	return counts, err
}

// CountOverdue counts tasks due strictly before now and not completed.
// Tasks with no due date never count.
func (r *TaskRepository) CountOverdue(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&task.Task{}).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", now, task.StatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *TaskRepository) EmployeeExists(employeeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&task.EmployeeRef{}).Where("id = ?", employeeID).Count(&count).Error
	return count > 0, err
}
