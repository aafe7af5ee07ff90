package domain

import "time"

// Priority is a display hint for a card. Values outside the known set are
// stored as-is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Card is a single task on a board. Board and ColumnName are opaque labels;
// Position orders cards inside one (Board, ColumnName) pair and is neither
// unique nor compacted.
type Card struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Board       string    `gorm:"type:varchar(255);not null;index:idx_cards_board_column,priority:1" json:"board"`
	ColumnName  string    `gorm:"column:column_name;type:varchar(255);not null;index:idx_cards_board_column,priority:2" json:"column_name"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Priority    Priority  `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}

// BoardSummary is one board label with the number of cards carrying it.
type BoardSummary struct {
	Board string `json:"board"`
	Cards int64  `json:"cards"`
}
