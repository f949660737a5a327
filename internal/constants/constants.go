package constants

import "time"

const (
	ArchiveTimeout  = 10 * time.Second
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	BatchTimeout    = 2 * time.Minute
)

const (
	DBMaxOpenConns    = 4
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
	MaxBatchSize     = 100
	MaxLogBytes      = 8 << 20
)

const (
	CacheMaxCost = 1 << 12 // decoded games held in memory
)
