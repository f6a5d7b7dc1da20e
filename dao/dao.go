// Package dao holds the DataSource capability and its database-backed variant.
package dao

import "go.uber.org/zap"

// DatabaseValue is the value served by Database.
const DatabaseValue = 23

// DataSource is where the business layer gets its input from.
type DataSource interface {
	FetchValue() float64
}

// Database is the database-backed DataSource.
type Database struct {
	log *zap.Logger
}

func NewDatabase() *Database {
	return &Database{log: zap.L().Named("dao")}
}

func (d *Database) FetchValue() float64 {
	d.logger().Info("Database version!")
	return DatabaseValue
}

func (d *Database) logger() *zap.Logger {
	if d.log == nil {
		return zap.L()
	}
	return d.log
}
