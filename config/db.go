package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"case-management-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "case_management_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

// SeedDatabase is idempotent; it only inserts rows when tables are empty.
func SeedDatabase() {
	// ---------------- Default admin user ----------------
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				FullName: "Admin User",
				Email:    "admin@retrofit.local",
				Password: string(hash),
				Role:     "ADMIN",
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Fixture catalog ----------------
	var ftCount int64
	DB.Model(&models.FixtureType{}).Count(&ftCount)
	if ftCount == 0 {
		fixtureTypes := []models.FixtureType{
			{Name: "T8 4ft Fluorescent 2-lamp", Wattage: 59, Description: "10"},
			{Name: "T8 4ft Fluorescent 4-lamp", Wattage: 112, Description: "16"},
			{Name: "T12 8ft Fluorescent 2-lamp", Wattage: 158, Description: "22"},
			{Name: "Metal Halide 400W Highbay", Wattage: 455, Description: "Magnetic ballast, warehouse/gym use"},
			{Name: "LED 4ft Tube 2-lamp Retrofit", Wattage: 36},
			{Name: "LED Panel 2x4", Wattage: 50},
			{Name: "LED Highbay 150W", Wattage: 150},
		}
		DB.Create(&fixtureTypes)
		log.Println("Fixture catalog seeded")
	}

	// ---------------- Room tags ----------------
	var tagCount int64
	DB.Model(&models.RoomTag{}).Count(&tagCount)
	if tagCount == 0 {
		tags := []models.RoomTag{
			{Name: "Classroom"},
			{Name: "Gym"},
			{Name: "Hallway"},
			{Name: "Cafeteria"},
			{Name: "Office"},
		}
		DB.Create(&tags)
		log.Println("Room tags seeded")
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.FixtureType{},
		&models.RoomTag{},
		&models.Case{},
		&models.OnSiteVisit{},
		&models.Room{},
		&models.ExistingLightAssignment{},
		&models.SuggestedLightAssignment{},
		&models.RoomPhoto{},
		&models.CaseDocument{},
		&models.SavingsReport{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
