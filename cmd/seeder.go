package cmd

import (
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	companymodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/company"
	usermodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/user"
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

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"tasks", "project_members", "projects", "announcements", "users", "companies"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		var company companymodel.Company
		if err := db.Where("name = ?", "Acme Corp").
			Attrs(companymodel.Company{Name: "Acme Corp", SubscriptionPlan: "free"}).
			FirstOrCreate(&company).Error; err != nil {
			log.Fatalf("failed to seed company: %v", err)
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)

		seedUsers := []usermodel.User{
			{Name: "Alice Admin", Email: "alice@acme.test", Role: "Admin"},
			{Name: "Mark Manager", Email: "mark@acme.test", Role: "Manager"},
			{Name: "Eve Employee", Email: "eve@acme.test", Role: "Employee"},
		}

		for _, u := range seedUsers {
			var existing usermodel.User
			err := db.Where("email = ?", u.Email).First(&existing).Error
			if err == nil {
				fmt.Printf("user %s already exists\n", u.Email)
				continue
			}

			u.PasswordHash = string(hash)
			u.CompanyID = company.ID
			u.IsActive = true
			u.EmailVerified = true
			if err := db.Create(&u).Error; err != nil {
				log.Fatalf("failed to seed user %s: %v", u.Email, err)
			}
			fmt.Printf("seeded user %s (%s)\n", u.Email, u.Role)
		}
	},
}
