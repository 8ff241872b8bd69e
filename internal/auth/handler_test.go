package auth_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/ardiansn/employee-management/internal/auth"
	authPostgres "github.com/ardiansn/employee-management/internal/auth/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Auth Handler Integration", func() {
	var (
		db      *gorm.DB
		service *auth.Service
		handler *auth.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&auth.User{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := authPostgres.NewUserRepository(db)
		tokenGen := auth.NewJWTTokenGenerator("test-secret", time.Hour)
		service = auth.NewService(repo, tokenGen, 4, slogger)
		handler = auth.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/auth/register", handler.Register)
		router.Post("/auth/login", handler.Login)
		router.Group(func(r chi.Router) {
			r.Use(handler.AuthMiddleware)
			r.Get("/auth/profile", handler.Profile)
			r.Group(func(r chi.Router) {
				r.Use(handler.RequireAdmin)
				r.Post("/admin-only", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNoContent)
				})
			})
		})
	})

	register := func(email string) string {
		body := fmt.Sprintf(`{"email":%q,"password":"secret123","name":"Test User"}`, email)
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var resp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Data    struct {
				User  auth.User `json:"user"`
				Token string    `json:"token"`
			} `json:"data"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Success).To(BeTrue())
		Expect(resp.Message).To(Equal("User registered successfully"))
		Expect(resp.Data.Token).NotTo(BeEmpty())
		return resp.Data.Token
	}

	Describe("POST /auth/register", func() {
		It("should register and return a usable token", func() {
			token := register("new@example.com")

			req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Data auth.User `json:"data"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Data.Email).To(Equal("new@example.com"))
		})

		It("should not leak the password hash in the response", func() {
			body := `{"email":"leak@example.com","password":"secret123","name":"Leak Check"}`
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Body.String()).NotTo(ContainSubstring("password"))
			Expect(w.Body.String()).NotTo(ContainSubstring("secret123"))
		})

		It("should reject a duplicate email with 400", func() {
			register("dup@example.com")

			body := `{"email":"dup@example.com","password":"secret123","name":"Second"}`
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("User with this email already exists"))
		})
	})

	Describe("POST /auth/login", func() {
		BeforeEach(func() {
			register("known@example.com")
		})

		It("should log in with valid credentials", func() {
			body := `{"email":"known@example.com","password":"secret123"}`
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Message string `json:"message"`
				Data    struct {
					Token string `json:"token"`
				} `json:"data"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("Login successful"))
			Expect(resp.Data.Token).NotTo(BeEmpty())
		})

		It("should answer 401 with the same message for wrong password and unknown email", func() {
			wrongPass := httptest.NewRecorder()
			router.ServeHTTP(wrongPass, httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"email":"known@example.com","password":"bad"}`)))

			unknown := httptest.NewRecorder()
			router.ServeHTTP(unknown, httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"email":"nobody@example.com","password":"bad"}`)))

			Expect(wrongPass.Code).To(Equal(http.StatusUnauthorized))
			Expect(unknown.Code).To(Equal(http.StatusUnauthorized))
			Expect(wrongPass.Body.String()).To(Equal(unknown.Body.String()))
			Expect(wrongPass.Body.String()).To(ContainSubstring("Invalid email or password"))
		})
	})

	Describe("token middleware", func() {
		It("should reject a request with no token", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(ContainSubstring("Authentication token required"))
		})

		It("should reject a malformed token", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
			req.Header.Set("Authorization", "Bearer garbage")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(ContainSubstring("Invalid or expired token"))
		})
	})

	Describe("admin gate", func() {
		It("should deny a regular user with 403", func() {
			token := register("user@example.com")

			req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(ContainSubstring("Admin access required"))
		})

		It("should admit an admin token", func() {
			// admins are provisioned by the seeder, not via register
			admin := &auth.User{Email: "admin@example.com", PasswordHash: "x", Name: "Admin", Role: auth.RoleAdmin}
			Expect(db.Create(admin).Error).To(Succeed())

			tokenGen := auth.NewJWTTokenGenerator("test-secret", time.Hour)
			token, err := tokenGen.IssueToken(admin)
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
		})
	})
})
