package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/user"
	userPostgres "github.com/frahmantamala/shift-tracker/internal/user/postgres"
	"github.com/frahmantamala/shift-tracker/pkg/logger"
	"github.com/spf13/cobra"
)

var clearData bool

var demoUsers = []struct {
	UniqueID string
	Name     string
	Role     internal.Role
}{
	{"FAHRER-001", "Fadhil", internal.RoleDriver},
	{"FAHRER-002", "Lena", internal.RoleDriver},
	{"ADMIN-001", "Padil Admin", internal.RoleAdmin},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		lg := logger.Setup(logger.Options{Level: cfg.Observability.Logging.Level, Format: "text"})

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		ctx := context.Background()

		if clearData {
			if err := gormDB.WithContext(ctx).Exec("DELETE FROM shifts").Error; err != nil {
				log.Fatalf("failed to clear shifts: %v", err)
			}
			if err := gormDB.WithContext(ctx).Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing shifts and users")
		}

		users := user.NewService(userPostgres.NewUserRepository(gormDB), lg)
		for _, u := range demoUsers {
			seeded, created, err := users.Ensure(ctx, u.UniqueID, u.Name, u.Role)
			if err != nil {
				log.Fatalf("failed to seed user %s: %v", u.UniqueID, err)
			}
			if created {
				fmt.Printf("Seeded %s user: %s (id %d)\n", seeded.Role, seeded.UniqueID, seeded.ID)
			} else {
				fmt.Printf("%s already exists (id %d)\n", seeded.UniqueID, seeded.ID)
			}
		}

		all, err := users.List(ctx)
		if err != nil {
			log.Fatalf("failed to list users: %v", err)
		}
		fmt.Printf("%d users in directory\n", len(all))
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
