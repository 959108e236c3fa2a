package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ClientTimeout   = 10 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	StatusCheckListLimit = 1000
	GameResultListLimit  = 100
)

const (
	StatusChecksCollection = "status_checks"
	GameResultsCollection  = "game_results"
	CountersCollection     = "counters"

	// counter/sequence key for game numbers, shared by both stores
	GameNumberSequence = "game_results"
)
