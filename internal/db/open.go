package db

import "fmt"

const (
	DriverMariaDB = "mariadb"
	DriverSQLite  = "sqlite"
)

// Open connects to the store selected by driver.
func Open(driver string, maria MariaDbConfig, lite SQLiteConfig) (*Database, error) {
	switch driver {
	case DriverMariaDB:
		return New(maria)
	case DriverSQLite:
		return NewSQLite(lite.Path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
