package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
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

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"payments_log", "player_fee_overrides", "category_fee_schedules",
				"player_rankings", "matches_input", "players", "category_master",
				"app_users", "academies",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		var academyID int64
		row := db.Raw("SELECT id FROM academies WHERE name = ?", "AlphaGrips Academy").Row()
		if err := row.Scan(&academyID); err != nil {
			if err := db.Exec("INSERT INTO academies (name, created_at, updated_at) VALUES (?, now(), now())", "AlphaGrips Academy").Error; err != nil {
				log.Fatalf("failed to insert academy: %v", err)
			}
			if err := db.Raw("SELECT id FROM academies WHERE name = ?", "AlphaGrips Academy").Row().Scan(&academyID); err != nil {
				log.Fatalf("failed to look up seeded academy: %v", err)
			}
			fmt.Println("Seeded academy: AlphaGrips Academy")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		users := []struct {
			Email     string
			Role      string
			AcademyID interface{}
		}{
			{"admin@alphagrips.in", "super_admin", nil},
			{"headcoach@alphagrips.in", "head_coach", academyID},
			{"coach@alphagrips.in", "coach", academyID},
			{"viewer@alphagrips.in", "viewer", academyID},
		}

		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM app_users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO app_users (email, password_hash, role, academy_id, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
				u.Email, string(hash), u.Role, u.AcademyID).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		categories := []struct {
			Name  string
			Order int
		}{
			{"Beginner", 1},
			{"Intermediate", 2},
			{"Advanced", 3},
		}

		for _, c := range categories {
			var exists int
			if err := db.Raw("SELECT 1 FROM category_master WHERE academy_id = ? AND name = ?", academyID, c.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO category_master (academy_id, name, display_order, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
				academyID, c.Name, c.Order).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			fmt.Println("Seeded category:", c.Name)
		}

		// one fee schedule per category, effective from the start of this year
		yearStart := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		fees := map[string]int64{"Beginner": 1000, "Intermediate": 1500, "Advanced": 2000}
		for name, fee := range fees {
			var categoryID int64
			if err := db.Raw("SELECT id FROM category_master WHERE academy_id = ? AND name = ?", academyID, name).Row().Scan(&categoryID); err != nil {
				log.Fatalf("category not found after insert %s: %v", name, err)
			}
			var exists int
			if err := db.Raw("SELECT 1 FROM category_fee_schedules WHERE academy_id = ? AND category_id = ?", academyID, categoryID).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO category_fee_schedules (academy_id, category_id, monthly_fee, effective_from, is_active, created_at) VALUES (?, ?, ?, ?, true, now())",
				academyID, categoryID, fee, yearStart).Error; err != nil {
				log.Fatalf("failed to insert fee schedule for %s: %v", name, err)
			}
			fmt.Printf("Seeded fee schedule: %s -> %d/month\n", name, fee)
		}

		players := []struct {
			Name     string
			Category string
		}{
			{"Aarav Sharma", "Beginner"},
			{"Diya Patel", "Beginner"},
			{"Kabir Mehta", "Intermediate"},
			{"Ishaan Rao", "Advanced"},
		}

		for _, p := range players {
			var categoryID int64
			if err := db.Raw("SELECT id FROM category_master WHERE academy_id = ? AND name = ?", academyID, p.Category).Row().Scan(&categoryID); err != nil {
				log.Fatalf("category not found for player %s: %v", p.Name, err)
			}
			var exists int
			if err := db.Raw("SELECT 1 FROM players WHERE academy_id = ? AND name = ?", academyID, p.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO players (academy_id, category_id, name, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
				academyID, categoryID, p.Name).Error; err != nil {
				log.Fatalf("failed to insert player %s: %v", p.Name, err)
			}
			fmt.Println("Seeded player:", p.Name)
		}

		fmt.Println("Seeding complete")
	},
}
