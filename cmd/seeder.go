package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the default departments and demo users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"comments", "files", "sessions", "users", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		departments := []struct {
			Name  string
			Desc  string
			Icon  string
			Color string
		}{
			{"HR Department", "Human Resources", "fas fa-users", "green"},
			{"Finance", "Financial Department", "fas fa-chart-line", "blue"},
			{"Marketing", "Marketing Department", "fas fa-bullhorn", "purple"},
			{"Operations", "Operations Department", "fas fa-cogs", "orange"},
			{"IT Department", "Information Technology", "fas fa-laptop", "indigo"},
			{"Sales", "Sales Department", "fas fa-handshake", "red"},
			{"Legal", "Legal Department", "fas fa-gavel", "gray"},
			{"Quality Assurance", "Quality Control", "fas fa-check-circle", "teal"},
		}

		for _, d := range departments {
			var exists int
			if err := db.Raw("SELECT 1 FROM departments WHERE name = ?", d.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO departments (name, description, icon, color, created_at) VALUES (?, ?, ?, ?, now())", d.Name, d.Desc, d.Icon, d.Color).Error; err != nil {
				log.Fatalf("failed to insert department %s: %v", d.Name, err)
			}
			fmt.Println("Seeded department:", d.Name)
		}

		password := "password"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		users := []struct {
			Email      string
			FirstName  string
			LastName   string
			Role       string
			Department *string
		}{
			{"admin@docuvault.dev", "Ava", "Admin", "admin", nil},
			{"finance@docuvault.dev", "Dewi", "Finance", "department", strPtr("Finance")},
		}

		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				fmt.Println("user already exists:", u.Email)
				continue
			}
			if err := db.Exec(
				"INSERT INTO users (id, email, first_name, last_name, password_hash, role, department_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, now(), now())",
				uuid.NewString(), u.Email, u.FirstName, u.LastName, string(hash), u.Role, u.Department,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}
	},
}

func strPtr(s string) *string {
	return &s
}
