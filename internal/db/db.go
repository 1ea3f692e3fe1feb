package db

import (
	"cat_api/internal/config" // Application configuration
	"net"                     // Host/port joining

	mysqldriver "github.com/go-sql-driver/mysql" // MySQL DSN builder
	"github.com/sirupsen/logrus"                 // Structured logging
	"gorm.io/driver/mysql"                       // MySQL driver for GORM
	"gorm.io/gorm"                               // GORM ORM library
	"gorm.io/gorm/logger"                        // GORM logger levels
)

// DSN builds the MySQL Data Source Name from configuration
func DSN(cfg *config.Config) string {
	dc := mysqldriver.NewConfig()
	dc.User = cfg.DBUser                               // Database user
	dc.Passwd = cfg.DBPassword                         // Database password
	dc.Net = "tcp"                                     // Always TCP
	dc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort) // host:port
	dc.DBName = cfg.DBName                             // Database name
	dc.ParseTime = true                                // DATE columns scan into time.Time
	dc.ClientFoundRows = true                          // Affected rows count matched rows, not changed ones
	return dc.FormatDSN()
}

// Open connects to MySQL and sizes the shared connection pool
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		SkipDefaultTransaction: true, // Every operation is one statement, no implicit transactions
		Logger:                 logger.Default.LogMode(logger.Warn),
	}
	if cfg.IsProd {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent) // Request logger covers production
	}
	gdb, err := gorm.Open(mysql.Open(DSN(cfg)), gormCfg) // Open a connection to the database
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB() // Underlying pool
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)   // Upper bound on connections
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)   // Idle connections kept warm
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLife) // Recycle old connections
	logrus.WithFields(logrus.Fields{
		"host": cfg.DBHost, // Database host
		"name": cfg.DBName, // Database name
	}).Info("Database connected")
	return gdb, nil
}
