package database

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-billing/models"
	"github.com/yeremiapane/restaurant-billing/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate membuat tabel menu, orders, order_items, dan users
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// SeedUsers memastikan akun admin dan cashier ada. Akun yang sudah ada tidak diubah.
func SeedUsers(db *gorm.DB, adminPassword, cashierPassword string) error {
	defaults := []struct {
		username, password, role string
	}{
		{"admin", adminPassword, models.RoleAdmin},
		{"cashier", cashierPassword, models.RoleCashier},
	}

	for _, d := range defaults {
		var existing models.User
		err := db.Where("username = ?", d.username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup user %s: %w", d.username, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", d.username, err)
		}
		user := models.User{Username: d.username, PasswordHash: string(hashed), Role: d.role}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create user %s: %w", d.username, err)
		}
		utils.InfoLogger.Printf("Seeded default %s account %q", d.role, d.username)
	}
	return nil
}
