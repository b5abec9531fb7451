//go:build cgo

package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// foreignKeysParam turns on foreign key enforcement for every connection go-sqlite3 opens
const foreignKeysParam = "_foreign_keys=on"

// sqliteDialector uses the mattn/go-sqlite3 backed driver when cgo is available
func sqliteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(withParam(dsn, foreignKeysParam))
}
