package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/ardiansn/employee-management/internal/auth"
	"github.com/ardiansn/employee-management/internal/employee"
	"github.com/ardiansn/employee-management/internal/task"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data...")
			// tasks first, they reference employees
			for _, table := range []string{"tasks", "employees", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		users := []auth.User{
			{Email: "admin@example.com", PasswordHash: string(hash), Name: "Admin User", Role: auth.RoleAdmin},
			{Email: "user@example.com", PasswordHash: string(hash), Name: "Regular User", Role: auth.RoleUser},
		}
		for i := range users {
			if err := seedUser(db, &users[i]); err != nil {
				log.Fatalf("failed to seed user %s: %v", users[i].Email, err)
			}
		}

		var employeeCount int64
		if err := db.Model(&employee.Employee{}).Count(&employeeCount).Error; err != nil {
			log.Fatalf("failed to count employees: %v", err)
		}
		if employeeCount > 0 {
			fmt.Println("Employees already present; skipping sample data")
			return
		}

		employees := sampleEmployees()
		if err := db.Create(&employees).Error; err != nil {
			log.Fatalf("failed to seed employees: %v", err)
		}
		fmt.Printf("Seeded %d employees\n", len(employees))

		tasks := sampleTasks(employees)
		if err := db.Create(&tasks).Error; err != nil {
			log.Fatalf("failed to seed tasks: %v", err)
		}
		fmt.Printf("Seeded %d tasks\n", len(tasks))
	},
}

func seedUser(db *gorm.DB, u *auth.User) error {
	var count int64
	if err := db.Model(&auth.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Printf("User %s already exists; skipping\n", u.Email)
		return nil
	}
	if err := db.Create(u).Error; err != nil {
		return err
	}
	fmt.Printf("Seeded user %s (%s)\n", u.Email, u.Role)
	return nil
}

func sampleEmployees() []employee.Employee {
	phone := func(s string) *string { return &s }
	return []employee.Employee{
		{
			FirstName:  "Sarah",
			LastName:   "Chen",
			Email:      "sarah.chen@example.com",
			Phone:      phone("+1-555-0101"),
			Department: "Engineering",
			Position:   "Senior Software Engineer",
			Salary:     125000,
			HireDate:   time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
			Status:     employee.StatusActive,
		},
		{
			FirstName:  "Marcus",
			LastName:   "Johnson",
			Email:      "marcus.johnson@example.com",
			Phone:      phone("+1-555-0102"),
			Department: "Engineering",
			Position:   "DevOps Engineer",
			Salary:     115000,
			HireDate:   time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
			Status:     employee.StatusActive,
		},
		{
			FirstName:  "Priya",
			LastName:   "Patel",
			Email:      "priya.patel@example.com",
			Department: "Marketing",
			Position:   "Marketing Manager",
			Salary:     95000,
			HireDate:   time.Date(2020, 11, 9, 0, 0, 0, 0, time.UTC),
			Status:     employee.StatusOnLeave,
		},
		{
			FirstName:  "Diego",
			LastName:   "Ramirez",
			Email:      "diego.ramirez@example.com",
			Phone:      phone("+1-555-0104"),
			Department: "Sales",
			Position:   "Account Executive",
			Salary:     85000,
			HireDate:   time.Date(2023, 1, 23, 0, 0, 0, 0, time.UTC),
			Status:     employee.StatusActive,
		},
		{
			FirstName:  "Emma",
			LastName:   "Wilson",
			Email:      "emma.wilson@example.com",
			Department: "Human Resources",
			Position:   "HR Specialist",
			Salary:     72000,
			HireDate:   time.Date(2019, 8, 5, 0, 0, 0, 0, time.UTC),
			Status:     employee.StatusInactive,
		},
	}
}

func sampleTasks(employees []employee.Employee) []task.Task {
	desc := func(s string) *string { return &s }
	due := func(d time.Time) *time.Time { return &d }
	now := time.Now()
	return []task.Task{
		{
			Title:       "Migrate CI pipeline",
			Description: desc("Move builds from Jenkins to the new runner pool"),
			Status:      task.StatusInProgress,
			Priority:    task.PriorityHigh,
			DueDate:     due(now.AddDate(0, 0, 14)),
			EmployeeID:  employees[1].ID,
		},
		{
			Title:       "Quarterly security review",
			Description: desc("Audit dependency versions and rotate service credentials"),
			Status:      task.StatusPending,
			Priority:    task.PriorityUrgent,
			DueDate:     due(now.AddDate(0, 0, 7)),
			EmployeeID:  employees[0].ID,
		},
		{
			Title:      "Update onboarding docs",
			Status:     task.StatusCompleted,
			Priority:   task.PriorityLow,
			DueDate:    due(now.AddDate(0, 0, -10)),
			EmployeeID: employees[4].ID,
		},
		{
			Title:       "Launch spring campaign",
			Description: desc("Coordinate copy, landing pages and email schedule"),
			Status:      task.StatusPending,
			Priority:    task.PriorityMedium,
			DueDate:     due(now.AddDate(0, 0, -3)),
			EmployeeID:  employees[2].ID,
		},
		{
			Title:      "Renew enterprise contracts",
			Status:     task.StatusInProgress,
			Priority:   task.PriorityHigh,
			EmployeeID: employees[3].ID,
		},
	}
}
