package dto

// CreateCardRequest represents the request to create a card
// @Description Request body for creating a card. The card is appended to the end of its column.
type CreateCardRequest struct {
	Board       string `json:"board" example:"Marketing & Sales 60-Day Plan"`
	ColumnName  string `json:"column_name" example:"Week 1"`
	Title       string `json:"title" example:"Draft launch email"`
	Description string `json:"description" example:"Two variants for A/B test"`
	Priority    string `json:"priority" example:"high"`
}

// UpdateCardRequest represents the request to update a card
// @Description Full replace of the mutable card fields. column_name and position
// @Description together move a card within or between columns.
type UpdateCardRequest struct {
	ColumnName  string `json:"column_name" example:"Week 2"`
	Position    *int   `json:"position" example:"1"`
	Title       string `json:"title" example:"Draft launch email"`
	Description string `json:"description" example:"Two variants for A/B test"`
	Priority    string `json:"priority" example:"medium"`
}
