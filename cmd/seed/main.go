package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/config"
	"github.com/codemyown/leave-mangement-system/internal/domain/delegation"
	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/codemyown/leave-mangement-system/internal/pkg/database"
	"github.com/codemyown/leave-mangement-system/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

// Seeds reference data for local development: a couple of accounts per
// capability, the three standard leave types, full balances for every
// employee, a few holidays, and one active delegation. Safe to re-run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database:", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	delegationRepo := postgresql.NewDelegationRepository(db)

	seedUsers := []struct {
		username   string
		password   string
		department string
		isEmployee bool
		isManager  bool
	}{
		{username: "manager", password: "manager", department: "HR", isManager: true},
		{username: "manager2", password: "manager2", department: "IT", isManager: true},
		{username: "emp1", password: "emp123", department: "HR", isEmployee: true},
		{username: "emp", password: "emp", department: "IT", isEmployee: true},
		{username: "admin", password: "admin"},
	}

	users := make(map[string]user.User, len(seedUsers))
	for _, s := range seedUsers {
		existing, err := userRepo.GetByUsername(ctx, s.username)
		if err == nil {
			users[s.username] = existing
			continue
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			log.Fatal("Error looking up user:", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Error hashing password:", err)
		}
		passwordHash := string(hash)
		department := s.department

		newUser := user.User{
			Username:     s.username,
			Email:        fmt.Sprintf("%s@example.com", s.username),
			PasswordHash: &passwordHash,
			IsEmployee:   s.isEmployee,
			IsManager:    s.isManager,
		}
		if department != "" {
			newUser.Department = &department
		}

		created, err := userRepo.Create(ctx, newUser)
		if err != nil {
			log.Fatal("Error creating user:", err)
		}
		users[s.username] = created
	}
	fmt.Println("Users created.")

	seedTypes := []leave.LeaveType{
		{Name: "Sick", AnnualQuota: 12, CarryForward: true},
		{Name: "Casual", AnnualQuota: 10, CarryForward: false},
		{Name: "Earned", AnnualQuota: 15, CarryForward: true},
	}

	types := make([]leave.LeaveType, 0, len(seedTypes))
	for _, t := range seedTypes {
		existing, err := leaveTypeRepo.GetByName(ctx, t.Name)
		if err == nil {
			types = append(types, existing)
			continue
		}
		if !errors.Is(err, leave.ErrLeaveTypeNotFound) {
			log.Fatal("Error looking up leave type:", err)
		}

		created, err := leaveTypeRepo.Create(ctx, t)
		if err != nil {
			log.Fatal("Error creating leave type:", err)
		}
		types = append(types, created)
	}
	fmt.Println("Leave types created.")

	employees, err := userRepo.ListEmployees(ctx)
	if err != nil {
		log.Fatal("Error listing employees:", err)
	}
	for _, e := range employees {
		for _, t := range types {
			if _, err := leaveBalanceRepo.GetOrCreate(ctx, e.ID, t.ID, t.AnnualQuota); err != nil {
				log.Fatal("Error creating leave balance:", err)
			}
		}
	}
	fmt.Println("Leave balances created.")

	today := time.Now().Truncate(24 * time.Hour)
	for i := 1; i <= 3; i++ {
		holDate := today.AddDate(0, 0, i)
		exists, err := holidayRepo.ExistsByDate(ctx, holDate)
		if err != nil {
			log.Fatal("Error checking holiday:", err)
		}
		if exists {
			continue
		}
		if _, err := holidayRepo.Create(ctx, holiday.Holiday{
			Date: holDate,
			Name: fmt.Sprintf("Holiday %d", i),
		}); err != nil {
			log.Fatal("Error creating holiday:", err)
		}
	}
	fmt.Println("Holidays created.")

	manager := users["manager"]
	delegate := users["manager2"]
	active, err := delegationRepo.ActiveForManager(ctx, manager.ID, today)
	if err != nil {
		log.Fatal("Error checking delegation:", err)
	}
	if active == nil {
		if _, err := delegationRepo.Create(ctx, delegation.Delegation{
			ManagerID:  manager.ID,
			DelegateID: delegate.ID,
			StartDate:  today,
			EndDate:    today.AddDate(0, 0, 7),
		}); err != nil {
			log.Fatal("Error creating delegation:", err)
		}
	}
	fmt.Println("Delegation created.")

	fmt.Println("Database seeded successfully!")
}
