package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardiansn/employee-management/internal"
	"github.com/ardiansn/employee-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(e *employee.Employee) error {
	return r.db.Create(e).Error
}

// GetByID loads the employee with its tasks ordered newest first. Returns
// nil without error when the id does not exist.
func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("email = ?", email).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

// List applies the search/filter/sort query and returns one page plus the
// total count for the same filter.
func (r *EmployeeRepository) List(q employee.ListQuery) ([]*employee.Employee, int64, error) {
	base := r.db.Model(&employee.Employee{})

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(position) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if q.Department != "" {
		base = base.Where("department = ?", q.Department)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*employee.Employee
	err := base.
		Preload("Tasks").
		Order(fmt.Sprintf("%s %s", q.SortBy, strings.ToUpper(q.Order))).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *EmployeeRepository) Update(e *employee.Employee) error {
	return r.db.Omit("Tasks").Save(e).Error
}

// Delete removes the employee and their tasks in one transaction. The
// explicit task delete keeps the cascade observable even on databases where
// the FK action is not enforced.
func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&employee.TaskRef{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&employee.Employee{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrEmployeeNotFound
		}
		return nil
	})
}

func (r *EmployeeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).Count(&count).Error
	return count, err
}

func (r *EmployeeRepository) CountWithStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *EmployeeRepository) GroupByDepartment() ([]employee.DepartmentCount, error) {
	var counts []employee.DepartmentCount
	err := r.db.Model(&employee.Employee{}).
		Select("department, COUNT(*) as count").
		Group("department").
		Order("department ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *EmployeeRepository) GroupByStatus() ([]employee.StatusCount, error) {
	var counts []employee.StatusCount
	err := r.db.Model(&employee.Employee{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error
	return counts, err
}
