package postgres

import "time"

type teamTableModel struct {
	ID         int64  `db:"id"`
	Name       string `db:"team_name"`
	Region     string `db:"region"`
	Seed       int    `db:"seed"`
	Round      int    `db:"round"`
	Eliminated bool   `db:"eliminated"`
	FinalFour  bool   `db:"final_four"`
	Finalist   bool   `db:"finalist"`
	Champion   bool   `db:"champion"`
}

type entryTableModel struct {
	ID             int64     `db:"id"`
	PlayerName     string    `db:"player_name"`
	Email          string    `db:"email"`
	Nickname       string    `db:"nickname"`
	Score          int       `db:"score"`
	HasPaid        bool      `db:"has_paid"`
	SubmissionDate time.Time `db:"submission_date"`
}

type selectionTableModel struct {
	ID           int64  `db:"id"`
	EntryID      int64  `db:"entry_id"`
	TeamName     string `db:"team_name"`
	Region       string `db:"region"`
	Seed         int    `db:"seed"`
	Cost         int    `db:"cost"`
	PointsEarned int    `db:"points_earned"`
}

type selectionStatusModel struct {
	selectionTableModel
	IsEliminated bool `db:"is_eliminated"`
	RoundReached int  `db:"round_reached"`
}

type adminUserModel struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}
