package models

import "time"

// ReportStatus tracks a report through the build queue.
type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportProcessing ReportStatus = "processing"
	ReportCompleted  ReportStatus = "completed"
	ReportFailed     ReportStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportProcessing, ReportCompleted, ReportFailed:
		return true
	}
	return false
}

type Report struct {
	ID            int64        `json:"id"`
	PublicID      string       `json:"public_id"`
	Player        string       `json:"player"`
	Status        ReportStatus `json:"status"`
	Error         string       `json:"error,omitempty"`
	MaxGames      int          `json:"max_games"`
	PGN           string       `json:"-"`
	GamesAnalyzed int          `json:"games_analyzed"`
	GamesSkipped  int          `json:"games_skipped"`
	TotalMistakes int          `json:"total_mistakes"`
	ProfileJSON   string       `json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}

// ReportGame is the stored per-game summary of a completed report.
type ReportGame struct {
	ReportID     int64  `json:"-"`
	GameIndex    int    `json:"game_index"`
	Ref          string `json:"ref,omitempty"`
	Color        string `json:"color"`
	Result       string `json:"result"`
	Outcome      string `json:"outcome"`
	Opening      string `json:"opening"`
	Rating       int    `json:"rating,omitempty"`
	Plies        int    `json:"plies"`
	Mistakes     int    `json:"mistakes"`
	MistakesJSON string `json:"-"`
	Skipped      bool   `json:"skipped,omitempty"`
	SkipReason   string `json:"skip_reason,omitempty"`
}

// ReportResult is everything written when a report finishes.
type ReportResult struct {
	GamesAnalyzed int
	GamesSkipped  int
	TotalMistakes int
	ProfileJSON   string
	Games         []ReportGame
}

type ReportFilter struct {
	Player   string
	Status   ReportStatus
	Limit    int
	Offset   int
	OrderDir string
}
