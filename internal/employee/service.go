package employee

import (
	"log/slog"

	"github.com/ardiansn/employee-management/internal"
)

// Repository defines the data access methods for employees.
type Repository interface {
	Create(e *Employee) error
	GetByID(id int64) (*Employee, error)
	GetByEmail(email string) (*Employee, error)
	List(q ListQuery) ([]*Employee, int64, error)
	Update(e *Employee) error
	Delete(id int64) error
	Count() (int64, error)
	CountWithStatus(status string) (int64, error)
	GroupByDepartment() ([]DepartmentCount, error)
	GroupByStatus() ([]StatusCount, error)
}

// Service handles employee business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(q ListQuery) ([]ListItem, int64, error) {
	employees, total, err := s.repo.List(q)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, 0, internal.NewInternalError("failed to list employees", err)
	}

	items := make([]ListItem, len(employees))
	for i, e := range employees {
		items[i] = toListItem(e)
	}
	return items, total, nil
}

// GetByID returns the employee with its tasks, newest first.
func (s *Service) GetByID(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to get employee", err)
	}
	if emp == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

// Create checks email uniqueness before inserting. Status defaults to active.
func (s *Service) Create(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to check employee email", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to check employee email", err)
	}
	if existing != nil {
		return nil, internal.ErrEmployeeEmailTaken
	}

	emp, err := dto.ToModel()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "email", emp.Email)
	return emp, nil
}

// Update applies partial fields. When the email changes, uniqueness is
// re-checked against the rest of the table.
func (s *Service) Update(id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load employee for update", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to load employee", err)
	}
	if emp == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	if dto.Email != nil && *dto.Email != emp.Email {
		taken, err := s.repo.GetByEmail(*dto.Email)
		if err != nil {
			s.logger.Error("failed to check employee email", "error", err, "email", *dto.Email)
			return nil, internal.NewInternalError("failed to check employee email", err)
		}
		if taken != nil {
			return nil, internal.ErrEmailInUse
		}
	}

	if err := dto.Apply(emp); err != nil {
		return nil, err
	}

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to update employee", err)
	}

	s.logger.Info("employee updated", "employee_id", emp.ID)
	return emp, nil
}

// Delete removes the employee and, by cascade, all tasks assigned to them.
func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *Service) Stats() (*Stats, error) {
	total, err := s.repo.Count()
	if err != nil {
		return nil, internal.NewInternalError("failed to compute employee stats", err)
	}

	active, err := s.repo.CountWithStatus(StatusActive)
	if err != nil {
		return nil, internal.NewInternalError("failed to compute employee stats", err)
	}

	departmentStats, err := s.repo.GroupByDepartment()
	if err != nil {
		return nil, internal.NewInternalError("failed to compute employee stats", err)
	}

	statusStats, err := s.repo.GroupByStatus()
	if err != nil {
		return nil, internal.NewInternalError("failed to compute employee stats", err)
	}

	return &Stats{
		TotalEmployees:    total,
		ActiveEmployees:   active,
		InactiveEmployees: total - active,
		DepartmentStats:   departmentStats,
		StatusStats:       statusStats,
	}, nil
}
