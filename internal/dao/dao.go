// Package dao implements the data access layer on gorm.
package dao

import (
	"fmt"
	"os"
	"time"

	"github.com/notehub/note-hub-service/pkg/fileurl"
	"github.com/notehub/note-hub-service/pkg/util"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// Dao holds the shared gorm handle for all repositories.
type Dao struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Dao {
	return &Dao{db: db}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

// DatabaseConfig mirrors the database section of the app config.
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
	// ReplicaHosts enables read/write splitting via dbresolver when
	// non-empty (mysql and postgres only).
	ReplicaHosts []string
}

// NewDBEngine opens the configured database and applies pool settings.
func NewDBEngine(c DatabaseConfig) (*gorm.DB, error) {
	dialector := newDialector(c, c.Host)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	logMode := logger.Silent
	if c.RunMode == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	if len(c.ReplicaHosts) > 0 {
		replicas := make([]gorm.Dialector, 0, len(c.ReplicaHosts))
		for _, host := range c.ReplicaHosts {
			if d := newDialector(c, host); d != nil {
				replicas = append(replicas, d)
			}
		}
		if len(replicas) > 0 {
			if err := db.Use(dbresolver.Register(dbresolver.Config{
				Sources:  []gorm.Dialector{dialector},
				Replicas: replicas,
				Policy:   dbresolver.RandomPolicy{},
			})); err != nil {
				return nil, err
			}
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	if lifetime, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if idle, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && idle > 0 {
		sqlDB.SetConnMaxIdleTime(idle)
	}

	return db, nil
}

func newDialector(c DatabaseConfig, host string) gorm.Dialector {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			host,
			c.UserName,
			c.Password,
			c.Name,
		))
	case "sqlite":
		if c.Path != ":memory:" && !fileurl.IsExist(c.Path) {
			_ = fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
