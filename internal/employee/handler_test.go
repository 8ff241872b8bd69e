package employee_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/ardiansn/employee-management/internal/employee"
	employeePostgres "github.com/ardiansn/employee-management/internal/employee/postgres"
	"github.com/ardiansn/employee-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Employee Handler Integration", func() {
	var (
		db      *gorm.DB
		service *employee.Service
		handler *employee.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employee.Employee{}, &employee.TaskRef{})
		Expect(err).NotTo(HaveOccurred())

		repo := employeePostgres.NewEmployeeRepository(db)
		service = employee.NewService(repo, testLogger())
		handler = employee.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/employees", handler.List)
		router.Get("/employees/stats", handler.Stats)
		router.Get("/employees/{id}", handler.Get)
		router.Post("/employees", handler.Create)
		router.Put("/employees/{id}", handler.Update)
		router.Delete("/employees/{id}", handler.Delete)
	})

	createEmployee := func(email string) int64 {
		body := fmt.Sprintf(`{
			"firstName": "Jane",
			"lastName": "Doe",
			"email": %q,
			"department": "Engineering",
			"position": "Engineer",
			"salary": 90000,
			"hireDate": "2023-05-01"
		}`, email)
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var resp struct {
			Success bool              `json:"success"`
			Message string            `json:"message"`
			Data    employee.Employee `json:"data"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Success).To(BeTrue())
		Expect(resp.Message).To(Equal("Employee created successfully"))
		return resp.Data.ID
	}

	Describe("POST /employees", func() {
		It("should create and return the employee in the envelope", func() {
			id := createEmployee("jane@example.com")
			Expect(id).To(BeNumerically(">", 0))
		})

		It("should reject a duplicate email with 400", func() {
			createEmployee("dup@example.com")

			body := `{"firstName":"A","lastName":"B","email":"dup@example.com","department":"X","position":"Y","salary":1,"hireDate":"2023-01-01"}`
			req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("Employee with this email already exists"))
		})

		It("should reject unknown fields in the body", func() {
			body := `{"firstName":"A","surprise":"field"}`
			req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /employees", func() {
		BeforeEach(func() {
			for i := 0; i < 12; i++ {
				createEmployee(fmt.Sprintf("emp%02d@example.com", i))
			}
		})

		It("should return page 1 of 10 with pagination metadata", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Success    bool                  `json:"success"`
				Data       []employee.ListItem   `json:"data"`
				Pagination *transport.Pagination `json:"pagination"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Data).To(HaveLen(10))
			Expect(resp.Pagination.Total).To(Equal(int64(12)))
			Expect(resp.Pagination.Page).To(Equal(1))
			Expect(resp.Pagination.Limit).To(Equal(10))
			Expect(resp.Pagination.TotalPages).To(Equal(2))
		})

		It("should serve the last partial page", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees?page=2", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			var resp struct {
				Data       []employee.ListItem   `json:"data"`
				Pagination *transport.Pagination `json:"pagination"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Data).To(HaveLen(2))
			Expect(resp.Pagination.TotalPages).To(Equal(2))
		})
	})

	Describe("GET /employees/{id}", func() {
		It("should return 404 for a missing employee", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/999", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("Employee not found"))
		})

		It("should return 400 for a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/abc", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /employees/{id}", func() {
		It("should apply a partial update", func() {
			id := createEmployee("jane@example.com")

			body := `{"position":"Staff Engineer"}`
			req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/employees/%d", id), strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Message string            `json:"message"`
				Data    employee.Employee `json:"data"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("Employee updated successfully"))
			Expect(resp.Data.Position).To(Equal("Staff Engineer"))
			Expect(resp.Data.FirstName).To(Equal("Jane"))
		})
	})

	Describe("DELETE /employees/{id}", func() {
		It("should delete and confirm", func() {
			id := createEmployee("jane@example.com")

			req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/employees/%d", id), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Message string `json:"message"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("Employee deleted successfully"))

			req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/employees/%d", id), nil)
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /employees/stats", func() {
		It("should return the aggregate payload", func() {
			createEmployee("a@example.com")
			createEmployee("b@example.com")

			req := httptest.NewRequest(http.MethodGet, "/employees/stats", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Data employee.Stats `json:"data"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Data.TotalEmployees).To(Equal(int64(2)))
			Expect(resp.Data.ActiveEmployees).To(Equal(int64(2)))
			Expect(resp.Data.InactiveEmployees).To(Equal(int64(0)))
		})
	})
})
