package employee_test

import (
	"errors"
	"log/slog"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/ardiansn/employee-management/internal"
	"github.com/ardiansn/employee-management/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

// MockRepository implements employee.Repository for testing
type MockRepository struct {
	employees  map[int64]*employee.Employee
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		employees: make(map[int64]*employee.Employee),
		nextID:    1,
	}
}

func (m *MockRepository) Create(e *employee.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	e.ID = m.nextID
	m.nextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	m.employees[e.ID] = e
	return nil
}

func (m *MockRepository) GetByID(id int64) (*employee.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	emp, exists := m.employees[id]
	if !exists {
		return nil, nil
	}
	return emp, nil
}

func (m *MockRepository) GetByEmail(email string) (*employee.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, emp := range m.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) List(q employee.ListQuery) ([]*employee.Employee, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var result []*employee.Employee
	for _, emp := range m.employees {
		result = append(result, emp)
	}
	return result, int64(len(result)), nil
}

func (m *MockRepository) Update(e *employee.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	m.employees[e.ID] = e
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	if _, exists := m.employees[id]; !exists {
		return internal.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *MockRepository) Count() (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return int64(len(m.employees)), nil
}

func (m *MockRepository) CountWithStatus(status string) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	var count int64
	for _, emp := range m.employees {
		if emp.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MockRepository) GroupByDepartment() ([]employee.DepartmentCount, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	counts := make(map[string]int64)
	for _, emp := range m.employees {
		counts[emp.Department]++
	}
	var result []employee.DepartmentCount
	for dept, count := range counts {
		result = append(result, employee.DepartmentCount{Department: dept, Count: count})
	}
	return result, nil
}

func (m *MockRepository) GroupByStatus() ([]employee.StatusCount, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	counts := make(map[string]int64)
	for _, emp := range m.employees {
		counts[emp.Status]++
	}
	var result []employee.StatusCount
	for status, count := range counts {
		result = append(result, employee.StatusCount{Status: status, Count: count})
	}
	return result, nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func salary(v float64) *float64 { return &v }

func validCreateDTO() employee.CreateEmployeeDTO {
	return employee.CreateEmployeeDTO{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane.doe@example.com",
		Department: "Engineering",
		Position:   "Engineer",
		Salary:     salary(90000),
		HireDate:   "2023-05-01",
	}
}

var _ = Describe("Employee Service", func() {
	var (
		mockRepo *MockRepository
		service  *employee.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		Context("with valid input", func() {
			It("should create the employee", func() {
				emp, err := service.Create(validCreateDTO())
				Expect(err).NotTo(HaveOccurred())
				Expect(emp.ID).To(BeNumerically(">", 0))
				Expect(emp.Email).To(Equal("jane.doe@example.com"))
			})

			It("should default status to active", func() {
				emp, err := service.Create(validCreateDTO())
				Expect(err).NotTo(HaveOccurred())
				Expect(emp.Status).To(Equal(employee.StatusActive))
			})

			It("should keep an explicit status", func() {
				dto := validCreateDTO()
				dto.Status = employee.StatusOnLeave
				emp, err := service.Create(dto)
				Expect(err).NotTo(HaveOccurred())
				Expect(emp.Status).To(Equal(employee.StatusOnLeave))
			})

			It("should parse the hire date", func() {
				emp, err := service.Create(validCreateDTO())
				Expect(err).NotTo(HaveOccurred())
				Expect(emp.HireDate.Year()).To(Equal(2023))
				Expect(emp.HireDate.Month()).To(Equal(time.May))
			})
		})

		Context("with invalid input", func() {
			It("should reject missing required fields", func() {
				dto := validCreateDTO()
				dto.FirstName = ""
				_, err := service.Create(dto)
				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
			})

			It("should reject a negative salary", func() {
				dto := validCreateDTO()
				dto.Salary = salary(-1)
				_, err := service.Create(dto)
				Expect(err).To(HaveOccurred())
			})

			It("should reject an unknown status", func() {
				dto := validCreateDTO()
				dto.Status = "retired"
				_, err := service.Create(dto)
				Expect(err).To(HaveOccurred())
			})

			It("should reject an unparseable hire date", func() {
				dto := validCreateDTO()
				dto.HireDate = "next tuesday"
				_, err := service.Create(dto)
				Expect(err).To(HaveOccurred())
			})
		})

		Context("when the email is already taken", func() {
			BeforeEach(func() {
				_, err := service.Create(validCreateDTO())
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the duplicate-email error", func() {
				_, err := service.Create(validCreateDTO())
				Expect(err).To(Equal(internal.ErrEmployeeEmailTaken))
			})
		})
	})

	Describe("GetByID", func() {
		It("should return not found for a missing id", func() {
			_, err := service.GetByID(42)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})

		It("should return the employee when present", func() {
			created, err := service.Create(validCreateDTO())
			Expect(err).NotTo(HaveOccurred())

			emp, err := service.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(emp.Email).To(Equal("jane.doe@example.com"))
		})
	})

	Describe("Update", func() {
		var existing *employee.Employee

		BeforeEach(func() {
			var err error
			existing, err = service.Create(validCreateDTO())
			Expect(err).NotTo(HaveOccurred())
		})

		It("should apply only the supplied fields", func() {
			position := "Staff Engineer"
			updated, err := service.Update(existing.ID, employee.UpdateEmployeeDTO{Position: &position})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Position).To(Equal("Staff Engineer"))
			Expect(updated.FirstName).To(Equal("Jane"))
			Expect(updated.Salary).To(Equal(90000.0))
		})

		It("should return not found for a missing id", func() {
			position := "Staff Engineer"
			_, err := service.Update(999, employee.UpdateEmployeeDTO{Position: &position})
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})

		It("should reject a change to an email already in use", func() {
			dto := validCreateDTO()
			dto.Email = "other@example.com"
			_, err := service.Create(dto)
			Expect(err).NotTo(HaveOccurred())

			taken := "other@example.com"
			_, err = service.Update(existing.ID, employee.UpdateEmployeeDTO{Email: &taken})
			Expect(err).To(Equal(internal.ErrEmailInUse))
		})

		It("should allow re-submitting the current email", func() {
			same := existing.Email
			_, err := service.Update(existing.ID, employee.UpdateEmployeeDTO{Email: &same})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Delete", func() {
		It("should delete an existing employee", func() {
			created, err := service.Create(validCreateDTO())
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(created.ID)).To(Succeed())
			_, err = service.GetByID(created.ID)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})

		It("should return not found for a missing id", func() {
			err := service.Delete(42)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("Stats", func() {
		BeforeEach(func() {
			seed := []struct {
				email      string
				department string
				status     string
			}{
				{"a@example.com", "Engineering", employee.StatusActive},
				{"b@example.com", "Engineering", employee.StatusActive},
				{"c@example.com", "Sales", employee.StatusOnLeave},
				{"d@example.com", "Sales", employee.StatusInactive},
			}
			for _, s := range seed {
				dto := validCreateDTO()
				dto.Email = s.email
				dto.Department = s.department
				dto.Status = s.status
				_, err := service.Create(dto)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should count inactive as total minus active", func() {
			stats, err := service.Stats()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalEmployees).To(Equal(int64(4)))
			Expect(stats.ActiveEmployees).To(Equal(int64(2)))
			Expect(stats.InactiveEmployees).To(Equal(int64(2)))
			Expect(stats.ActiveEmployees + stats.InactiveEmployees).To(Equal(stats.TotalEmployees))
		})

		It("should break down by department and status", func() {
			stats, err := service.Stats()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.DepartmentStats).To(ConsistOf(
				employee.DepartmentCount{Department: "Engineering", Count: 2},
				employee.DepartmentCount{Department: "Sales", Count: 2},
			))
			Expect(stats.StatusStats).To(ConsistOf(
				employee.StatusCount{Status: employee.StatusActive, Count: 2},
				employee.StatusCount{Status: employee.StatusOnLeave, Count: 1},
				employee.StatusCount{Status: employee.StatusInactive, Count: 1},
			))
		})

		It("should surface repository failures", func() {
			mockRepo.SetShouldFail(true, errors.New("database error"))
			_, err := service.Stats()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("List", func() {
		It("should strip full task rows into summaries", func() {
			created, err := service.Create(validCreateDTO())
			Expect(err).NotTo(HaveOccurred())
			created.Tasks = []employee.TaskRef{
				{ID: 7, Title: "Write report", Status: "pending", Priority: "high", EmployeeID: created.ID},
			}

			items, total, err := service.List(employee.ParseListQuery(url.Values{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(items[0].Tasks).To(HaveLen(1))
			Expect(items[0].Tasks[0].Title).To(Equal("Write report"))
			Expect(items[0].Employee.Tasks).To(BeNil())
		})
	})
})

var _ = Describe("ParseListQuery", func() {
	It("should apply defaults", func() {
		q := employee.ParseListQuery(url.Values{})
		Expect(q.Page).To(Equal(1))
		Expect(q.Limit).To(Equal(10))
		Expect(q.SortBy).To(Equal("created_at"))
		Expect(q.Order).To(Equal("desc"))
	})

	It("should cap the limit at 100", func() {
		q := employee.ParseListQuery(url.Values{"limit": {"500"}})
		Expect(q.Limit).To(Equal(10))
	})

	It("should ignore non-whitelisted sort columns", func() {
		q := employee.ParseListQuery(url.Values{"sortBy": {"password_hash"}})
		Expect(q.SortBy).To(Equal("created_at"))
	})

	It("should map camelCase sort keys to columns", func() {
		q := employee.ParseListQuery(url.Values{"sortBy": {"firstName"}, "order": {"asc"}})
		Expect(q.SortBy).To(Equal("first_name"))
		Expect(q.Order).To(Equal("asc"))
	})

	It("should compute the offset from page and limit", func() {
		q := employee.ParseListQuery(url.Values{"page": {"3"}, "limit": {"20"}})
		Expect(q.Offset()).To(Equal(40))
	})
})
