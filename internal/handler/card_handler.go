package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type CardHandler struct {
	cardService service.CardService
	logger      *zap.Logger
}

func NewCardHandler(cardService service.CardService, logger *zap.Logger) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		logger:      logger,
	}
}

// ListCards godoc
// @Summary      List the cards of a board
// @Description  Every card on the board, ordered by position ascending
// @Tags         cards
// @Produce      json
// @Param        board path string true "Board label"
// @Success      200 {array} domain.Card
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /cards/{board} [get]
func (h *CardHandler) ListCards(c *gin.Context) {
	cards, err := h.cardService.ListCards(c.Request.Context(), c.Param("board"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

// CreateCard godoc
// @Summary      Create a card
// @Description  Appends the card at the end of its column
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCardRequest true "Card"
// @Success      200 {object} domain.Card
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// UpdateCard godoc
// @Summary      Update or move a card
// @Description  Replaces column_name, position, title, description and priority.
// @Description  Cards at or after the target position shift down when the slot is taken.
// @Description  Responds with null when no card has the id.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        id path int true "Card ID"
// @Param        request body dto.UpdateCardRequest true "Card fields"
// @Success      200 {object} domain.Card
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /cards/{id} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	// card is nil for an unknown id and renders as null
	c.JSON(http.StatusOK, card)
}

// DeleteCard godoc
// @Summary      Delete a card
// @Description  Deleting an unknown id also succeeds
// @Tags         cards
// @Produce      json
// @Param        id path int true "Card ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(c.Request.Context(), id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK)
}

// ListBoards godoc
// @Summary      List boards
// @Description  Board labels currently referenced by at least one card, with card counts
// @Tags         cards
// @Produce      json
// @Success      200 {array} domain.BoardSummary
// @Failure      401 {object} response.ErrorResponse
// @Router       /boards [get]
func (h *CardHandler) ListBoards(c *gin.Context) {
	boards, err := h.cardService.ListBoards(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, boards)
}

func parseCardID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid card ID")
		return 0, false
	}
	return id, true
}
