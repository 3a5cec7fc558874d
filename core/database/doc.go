// Package database handles the MySQL connection for the load history store.
//
// It wraps GORM configuration: DSN construction with encoded credentials,
// connection pool limits, and an initial ping with timeout. The connection
// is optional; when it is unavailable the history feature stays disabled and
// the loader runs without persistence.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("history disabled", zap.Error(err))
//	}
package database
