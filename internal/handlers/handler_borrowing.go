package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kvyts/library_lending_app/internal/apperrors"
	portssvc "github.com/kvyts/library_lending_app/internal/core/ports/services"
	"github.com/kvyts/library_lending_app/internal/dto"
	"github.com/kvyts/library_lending_app/internal/middleware"
)

// borrowingHandler handles HTTP requests related to borrowings.
type borrowingHandler struct {
	borrowingService portssvc.BorrowingSvcFacade
}

// newBorrowingHandler creates a new borrowingHandler.
func newBorrowingHandler(bs portssvc.BorrowingSvcFacade) *borrowingHandler {
	return &borrowingHandler{borrowingService: bs}
}

// registerBorrowingRoutes registers routes related to borrowings. Every route
// requires authentication; visibility scoping happens in the service layer.
func registerBorrowingRoutes(rg *gin.RouterGroup, borrowingService portssvc.BorrowingSvcFacade) {
	h := newBorrowingHandler(borrowingService)

	borrowings := rg.Group("/borrowings")
	{
		borrowings.POST("", h.createBorrowing)
		borrowings.GET("", h.listBorrowings)
		borrowings.GET("/:id", h.getBorrowing)
		borrowings.PATCH("/:id", h.updateBorrowing)
		borrowings.DELETE("/:id", h.deleteBorrowing)
		borrowings.POST("/:id/return", h.returnBorrowing)
	}
}

// createBorrowing godoc
// @Summary Borrow a book
// @Description Takes one copy off the shelf and opens a borrowing for the caller
// @Tags borrowings
// @Accept json
// @Produce json
// @Param borrowing body dto.CreateBorrowingRequest true "Borrowing details"
// @Success 201 {object} dto.BorrowingResponse
// @Failure 400 {object} map[string]string "Invalid input, no inventory, or bad return date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Failed to create borrowing"
// @Security BearerAuth
// @Router /borrowings [post]
func (h *borrowingHandler) createBorrowing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBorrowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBorrowing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requester, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		logger.Error("Requester not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	borrowing, err := h.borrowingService.Borrow(c.Request.Context(), req, requester)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		case errors.Is(err, apperrors.ErrNoInventory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No copies of this book are available"})
		case errors.Is(err, apperrors.ErrInvalidReturnDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expected return date cannot be earlier than today"})
		default:
			logger.Error("Failed to create borrowing in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create borrowing"})
		}
		return
	}

	logger.Info("Borrowing created successfully", slog.Int64("borrowing_id", borrowing.BorrowingID))
	c.JSON(http.StatusCreated, dto.ToBorrowingResponse(borrowing, dto.BorrowingViewFor(requester)))
}

// listBorrowings godoc
// @Summary List borrowings
// @Description Lists borrowings visible to the caller, newest first. Staff may filter by user_id; everyone else sees only their own.
// @Tags borrowings
// @Produce json
// @Param is_active query bool false "Only open borrowings"
// @Param user_id query string false "Filter by owner (staff only)"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.BorrowingResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list borrowings"
// @Security BearerAuth
// @Router /borrowings [get]
func (h *borrowingHandler) listBorrowings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBorrowingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListBorrowings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	requester, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	borrowings, err := h.borrowingService.ListBorrowings(c.Request.Context(), params, requester)
	if err != nil {
		logger.Error("Failed to list borrowings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list borrowings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBorrowingResponse(borrowings, dto.BorrowingViewFor(requester)))
}

// getBorrowing godoc
// @Summary Get a borrowing by ID
// @Description Retrieves a single borrowing the caller is allowed to see
// @Tags borrowings
// @Produce json
// @Param id path int true "Borrowing ID"
// @Success 200 {object} dto.BorrowingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Borrowing not found"
// @Failure 500 {object} map[string]string "Failed to retrieve borrowing"
// @Security BearerAuth
// @Router /borrowings/{id} [get]
func (h *borrowingHandler) getBorrowing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	borrowingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	requester, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	borrowing, err := h.borrowingService.GetBorrowingByID(c.Request.Context(), borrowingID, requester)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Borrowing not found"})
		} else {
			logger.Error("Failed to get borrowing from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve borrowing"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBorrowingResponse(borrowing, dto.BorrowingViewFor(requester)))
}

// updateBorrowing godoc
// @Summary Update a borrowing's expected return date
// @Description Edits the expected return date of an open borrowing
// @Tags borrowings
// @Accept json
// @Produce json
// @Param id path int true "Borrowing ID to update"
// @Param borrowing body dto.UpdateBorrowingRequest true "New expected return date"
// @Success 200 {object} dto.BorrowingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Borrowing not found"
// @Failure 406 {object} map[string]string "Borrowing already returned"
// @Failure 500 {object} map[string]string "Failed to update borrowing"
// @Security BearerAuth
// @Router /borrowings/{id} [patch]
func (h *borrowingHandler) updateBorrowing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	borrowingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBorrowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBorrowing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requester, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	borrowing, err := h.borrowingService.UpdateExpectedReturnDate(c.Request.Context(), borrowingID, req, requester)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Borrowing not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrAlreadyReturned):
			c.JSON(http.StatusNotAcceptable, gin.H{"error": "Borrowing has already been returned"})
		case errors.Is(err, apperrors.ErrInvalidReturnDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expected return date cannot be earlier than today"})
		default:
			logger.Error("Failed to update borrowing in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update borrowing"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBorrowingResponse(borrowing, dto.BorrowingViewFor(requester)))
}

// returnBorrowing godoc
// @Summary Return a borrowed book
// @Description Closes an open borrowing and puts the copy back on the shelf
// @Tags borrowings
// @Produce json
// @Param id path int true "Borrowing ID to return"
// @Success 200 {object} dto.BorrowingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Borrowing not found"
// @Failure 406 {object} map[string]string "Borrowing already returned"
// @Failure 500 {object} map[string]string "Failed to return borrowing"
// @Security BearerAuth
// @Router /borrowings/{id}/return [post]
func (h *borrowingHandler) returnBorrowing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	borrowingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	requester, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.borrowingService.Return(c.Request.Context(), borrowingID, requester); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Borrowing not found"})
		case errors.Is(err, apperrors.ErrAlreadyReturned):
			c.JSON(http.StatusNotAcceptable, gin.H{"error": "Borrowing has already been returned"})
		default:
			logger.Error("Failed to return borrowing in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to return borrowing"})
		}
		return
	}

	borrowing, err := h.borrowingService.GetBorrowingByID(c.Request.Context(), borrowingID, requester)
	if err != nil {
		logger.Error("Failed to reload borrowing after return", slog.String("error", err.Error()))
		c.Status(http.StatusOK)
		return
	}

	logger.Info("Borrowing returned successfully", slog.Int64("borrowing_id", borrowingID))
	c.JSON(http.StatusOK, dto.ToBorrowingResponse(borrowing, dto.BorrowingViewFor(requester)))
}

// deleteBorrowing godoc
// @Summary Delete a borrowing
// @Description Hard-deletes a borrowing record (staff only). Inventory is not restored.
// @Tags borrowings
// @Produce json
// @Param id path int true "Borrowing ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Borrowing not found"
// @Failure 500 {object} map[string]string "Failed to delete borrowing"
// @Security BearerAuth
// @Router /borrowings/{id} [delete]
func (h *borrowingHandler) deleteBorrowing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	borrowingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	requester, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.borrowingService.DeleteBorrowing(c.Request.Context(), borrowingID, requester); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Borrowing not found"})
		default:
			logger.Error("Failed to delete borrowing in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete borrowing"})
		}
		return
	}

	logger.Info("Borrowing deleted successfully", slog.Int64("borrowing_id", borrowingID))
	c.Status(http.StatusNoContent)
}
