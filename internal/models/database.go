package models

import (
	"errors"
	"fmt"

	"ost-panel/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema.
func InitDB(cfg *config.Config) error {
	var dialector gorm.Dialector

	switch cfg.Database.Type {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.SQLite.Path)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Database.MySQL.Username,
			cfg.Database.MySQL.Password,
			cfg.Database.MySQL.Host,
			cfg.Database.MySQL.Port,
			cfg.Database.MySQL.Database,
			cfg.Database.MySQL.Charset,
		)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.Username,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.Database,
			cfg.Database.Postgres.SSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := DB.AutoMigrate(
		&User{}, &Session{},
		&Solicitud{}, &Equipo{}, &ArchivoAdjunto{},
		&AuditEntry{}, &OSTCounter{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return seedOSTCounter()
}

// seedOSTCounter creates the allocator row if it does not exist yet,
// starting from the highest OST already present so previously issued
// ticket numbers are never reused.
func seedOSTCounter() error {
	var ctr OSTCounter
	err := DB.First(&ctr, 1).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var max int64
	if err := DB.Model(&Equipo{}).Select("COALESCE(MAX(ost), 0)").Scan(&max).Error; err != nil {
		return err
	}
	return DB.Create(&OSTCounter{ID: 1, Valor: int(max)}).Error
}
