package task

import (
	"log/slog"
	"time"

	"github.com/ardiansn/employee-management/internal"
)

// Repository defines the data access methods for tasks. EmployeeExists backs
// the foreign-key check at create and reassignment time.
type Repository interface {
	Create(t *Task) error
	GetByID(id int64) (*Task, error)
	List(q ListQuery) ([]*Task, int64, error)
	ListByEmployee(employeeID int64) ([]*Task, error)
	Update(t *Task) error
	Delete(id int64) error
	Count() (int64, error)
	GroupByStatus() ([]StatusCount, error)
	GroupByPriority() ([]PriorityCount, error)
	CountOverdue(now time.Time) (int64, error)
	EmployeeExists(employeeID int64) (bool, error)
}

// Service handles task business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) List(q ListQuery) ([]ListItem, int64, error) {
	tasks, total, err := s.repo.List(q)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, 0, internal.NewInternalError("failed to list tasks", err)
	}

	items := make([]ListItem, len(tasks))
	for i, t := range tasks {
		items[i] = toListItem(t)
	}
	return items, total, nil
}

// GetByID returns the task with the full employee record attached.
func (s *Service) GetByID(id int64) (*Task, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get task", "error", err, "task_id", id)
		return nil, internal.NewInternalError("failed to get task", err)
	}
	if t == nil {
		return nil, internal.ErrTaskNotFound
	}
	return t, nil
}

func (s *Service) ListByEmployee(employeeID int64) ([]ListItem, error) {
	tasks, err := s.repo.ListByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to list tasks by employee", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("failed to list tasks", err)
	}

	items := make([]ListItem, len(tasks))
	for i, t := range tasks {
		items[i] = toListItem(t)
	}
	return items, nil
}

// Create validates the payload and resolves the employee reference before
// inserting. The reference check and the insert are separate statements; an
// employee deleted in between is an accepted race.
func (s *Service) Create(dto CreateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmployeeExists(dto.EmployeeID)
	if err != nil {
		s.logger.Error("failed to resolve employee", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("failed to resolve employee", err)
	}
	if !exists {
		return nil, internal.ErrEmployeeNotFound
	}

	t, err := dto.ToModel()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create task", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("failed to create task", err)
	}

	s.logger.Info("task created", "task_id", t.ID, "employee_id", t.EmployeeID)

	// reload to attach the employee projection
	created, err := s.repo.GetByID(t.ID)
	if err != nil || created == nil {
		return t, nil
	}
	return created, nil
}

// Update applies partial fields. A change of employeeId re-validates the
// reference against the employees table.
func (s *Service) Update(id int64, dto UpdateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load task for update", "error", err, "task_id", id)
		return nil, internal.NewInternalError("failed to load task", err)
	}
	if t == nil {
		return nil, internal.ErrTaskNotFound
	}

	if dto.EmployeeID != nil && *dto.EmployeeID != t.EmployeeID {
		exists, err := s.repo.EmployeeExists(*dto.EmployeeID)
		if err != nil {
			s.logger.Error("failed to resolve employee", "error", err, "employee_id", *dto.EmployeeID)
			return nil, internal.NewInternalError("failed to resolve employee", err)
		}
		if !exists {
			return nil, internal.ErrEmployeeNotFound
		}
	}

	if err := dto.Apply(t); err != nil {
		return nil, err
	}

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", id)
		return nil, internal.NewInternalError("failed to update task", err)
	}

	s.logger.Info("task updated", "task_id", t.ID, "status", t.Status)

	updated, err := s.repo.GetByID(t.ID)
	if err != nil || updated == nil {
		return t, nil
	}
	return updated, nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete task", "error", err, "task_id", id)
		return internal.NewInternalError("failed to delete task", err)
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

func (s *Service) Stats() (*Stats, error) {
	total, err := s.repo.Count()
	if err != nil {
		return nil, internal.NewInternalError("failed to compute task stats", err)
	}

	statusStats, err := s.repo.GroupByStatus()
	if err != nil {
		return nil, internal.NewInternalError("failed to compute task stats", err)
	}

	priorityStats, err := s.repo.GroupByPriority()
	if err != nil {
		return nil, internal.NewInternalError("failed to compute task stats", err)
	}

	overdue, err := s.repo.CountOverdue(s.now())
	if err != nil {
		return nil, internal.NewInternalError("failed to compute task stats", err)
	}

	return &Stats{
		TotalTasks:    total,
		StatusStats:   statusStats,
		PriorityStats: priorityStats,
		OverdueTasks:  overdue,
	}, nil
}
