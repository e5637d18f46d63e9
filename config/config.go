package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config menampung seluruh konfigurasi aplikasi billing
type Config struct {
	BindAddr string `envconfig:"BIND_ADDR" default:"127.0.0.1"`
	Port     string `envconfig:"PORT" default:"8080"`
	GinMode  string `envconfig:"GIN_MODE" default:"debug"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Database: sqlite (file tunggal) atau mysql
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBPath   string `envconfig:"DB_PATH" default:"db/restaurant.db"`
	MySQLDSN string `envconfig:"MYSQL_DSN"`

	// Lokasi file output bill dan laporan
	DataDir     string `envconfig:"DATA_DIR" default:"data"`
	MenuSeedCSV string `envconfig:"MENU_SEED_CSV" default:"data/menu.csv"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"change-this-secret-in-production"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"12h"`

	AdminPassword   string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	CashierPassword string `envconfig:"CASHIER_PASSWORD" default:"cashier123"`

	ClockInterval time.Duration `envconfig:"CLOCK_INTERVAL" default:"1s"`

	// OrderIDScheme: "snowflake" atau "unix" (detik, seperti versi lama)
	OrderIDScheme string `envconfig:"ORDER_ID_SCHEME" default:"snowflake"`
	SnowflakeNode int64  `envconfig:"SNOWFLAKE_NODE" default:"1"`

	RenderPDF bool `envconfig:"RENDER_PDF" default:"false"`
}

// Load membaca .env (jika ada) lalu environment variables
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment variables: %w", err)
	}
	return cfg, nil
}

func (c *Config) Addr() string { return c.BindAddr + ":" + c.Port }

func (c *Config) BillsDir() string { return filepath.Join(c.DataDir, "bills") }

func (c *Config) LedgerPath() string { return filepath.Join(c.DataDir, "orders_detailed.csv") }

func (c *Config) SalesReportPath() string { return filepath.Join(c.DataDir, "sales_report.csv") }

func (c *Config) AllBillsPath() string { return filepath.Join(c.DataDir, "all_bills.json") }

// EnsureDirs membuat folder db dan data bila belum ada
func (c *Config) EnsureDirs() error {
	dirs := []string{c.DataDir, c.BillsDir()}
	if c.DBDriver == "sqlite" {
		dirs = append(dirs, filepath.Dir(c.DBPath))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// InitDB membuka koneksi gorm sesuai driver yang dipilih
func InitDB(c *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch c.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(c.DBPath)
	case "mysql":
		if c.MySQLDSN == "" {
			return nil, fmt.Errorf("MYSQL_DSN is required for mysql driver")
		}
		dialector = mysql.Open(c.MySQLDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Tabel order_items tidak memakai foreign key constraint
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", c.DBDriver, err)
	}

	if c.DBDriver == "sqlite" {
		// sqlite hanya mengizinkan satu writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}
