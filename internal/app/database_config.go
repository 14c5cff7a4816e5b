package app

import (
	"strings"

	"github.com/charlesng35/kurukshetra/internal/database"
)

// ConnectionConfig converts the database section into the options accepted by database.Open.
// Unknown drivers are passed through so that Open reports them.
func (c DatabaseConfig) ConnectionConfig() database.Config {
	dbCfg := database.Config{
		Driver: strings.ToLower(strings.TrimSpace(c.Driver)),
		Path:   strings.TrimSpace(c.Path),
		DSN:    strings.TrimSpace(c.DSN),
	}

	switch dbCfg.Driver {
	case "", "sqlite", "sqlite3":
		dbCfg.Driver = "sqlite"
	case "postgres", "postgresql", "pg":
		dbCfg.Driver = "postgres"
		c.Postgres.apply(&dbCfg)
	case "mysql", "mariadb":
		dbCfg.Driver = "mysql"
		c.MySQL.apply(&dbCfg)
	}

	return dbCfg
}

func (a DBAuthConfig) apply(dbCfg *database.Config) {
	dbCfg.Host = strings.TrimSpace(a.Host)
	dbCfg.Port = a.Port
	dbCfg.Name = strings.TrimSpace(a.Database)
	dbCfg.User = strings.TrimSpace(a.Username)
	dbCfg.Password = a.Password
}
