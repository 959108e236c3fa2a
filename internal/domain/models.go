package domain

import (
	"time"
)

type StatusCheck struct {
	ID         string // uuid v4
	ClientName string
	Timestamp  time.Time
}

type GameResult struct {
	GameNumber int64
	WinnerName string
	GameMode   string // "local" or "ai", not enforced
	CreatedAt  time.Time
}

const (
	GameModeLocal = "local"
	GameModeAI    = "ai"
)
