package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/session"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

var (
	clearData    bool
	seedPassword string
)

// seedAccount is a development account created through the upstream API.
type seedAccount struct {
	create  user.Create
	balance float64
}

var seedAccounts = []seedAccount{
	{
		create: user.Create{
			Username: "hr.admin",
			Email:    "hr.admin@mail.com",
			FullName: "HR Admin",
			Role:     user.RoleHR,
		},
	},
	{
		create: user.Create{
			Username: "fadhil",
			Email:    "fadhil@mail.com",
			FullName: "Fadhil",
			Role:     user.RoleEmployee,
		},
		balance: 15,
	},
	{
		create: user.Create{
			Username: "padil",
			Email:    "padil@mail.com",
			FullName: "Padil",
			Role:     user.RoleEmployee,
		},
		balance: 12,
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the upstream API with development accounts",
	Long: `Register an HR account, then use it to create employees and their leave balances.
Accounts that already exist are left alone.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		lg := logger.LoggerWrapper()

		if clearData {
			_, gormDB, err := initDB(cfg.Database)
			if err != nil {
				log.Fatalf("failed to init db: %v", err)
			}
			result := gormDB.Where("1 = 1").Delete(&session.Session{})
			if result.Error != nil {
				log.Fatalf("failed to clear sessions: %v", result.Error)
			}
			fmt.Println("Cleared portal sessions:", result.RowsAffected)
		}

		client, err := newUpstreamClient(cfg, lg)
		if err != nil {
			log.Fatalf("failed to init upstream client: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		hr := seedAccounts[0].create
		hr.Password = seedPassword
		hr.ConfirmPassword = seedPassword
		if _, err := client.Register(ctx, hr); err != nil {
			fmt.Printf("HR account %s not registered: %s\n", hr.Username, apiclient.Message(err))
		} else {
			fmt.Println("Seeded HR account:", hr.Email)
		}

		token, err := client.Login(ctx, hr.Username, seedPassword)
		if err != nil {
			log.Fatalf("failed to sign in as %s: %v", hr.Username, err)
		}
		ctx = apiclient.WithToken(ctx, token.AccessToken)

		for _, account := range seedAccounts[1:] {
			payload := account.create
			payload.Password = seedPassword
			payload.ConfirmPassword = seedPassword
			if _, err := client.CreateUser(ctx, payload); err != nil {
				fmt.Printf("employee %s not created: %s\n", payload.Username, apiclient.Message(err))
				continue
			}
			fmt.Println("Seeded employee:", payload.Email)
		}

		users, err := client.ListUsers(ctx)
		if err != nil {
			log.Fatalf("failed to list users: %v", err)
		}
		ids := make(map[string]string, len(users))
		for _, u := range users {
			ids[u.Username] = u.ID
		}

		year := time.Now().Year()
		for _, account := range seedAccounts[1:] {
			id, ok := ids[account.create.Username]
			if !ok {
				continue
			}
			total := account.balance
			_, err := client.CreateLeaveBalance(ctx, leavebalance.Create{
				UserID:        id,
				LeaveType:     string(timeoff.LeaveVacation),
				Year:          year,
				RemainingDays: account.balance,
				TotalDays:     &total,
			})
			if err != nil {
				fmt.Printf("leave balance for %s not created: %s\n", account.create.Username, apiclient.Message(err))
				continue
			}
			fmt.Printf("Seeded %v vacation days for %s\n", account.balance, account.create.Username)
		}
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Delete all portal sessions before seeding")
	seedCmd.Flags().StringVar(&seedPassword, "password", "password", "Password for every seeded account")
}
