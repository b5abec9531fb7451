//go:build !cgo

package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// foreignKeysParam turns on foreign key enforcement for every connection the pure Go driver opens
const foreignKeysParam = "_pragma=foreign_keys(1)"

// sqliteDialector uses the pure Go driver for CGO_ENABLED=0 builds
func sqliteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(withParam(dsn, foreignKeysParam))
}
