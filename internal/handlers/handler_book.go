package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kvyts/library_lending_app/internal/apperrors"
	portssvc "github.com/kvyts/library_lending_app/internal/core/ports/services"
	"github.com/kvyts/library_lending_app/internal/dto"
	"github.com/kvyts/library_lending_app/internal/middleware"
)

// bookHandler handles HTTP requests related to the book catalog.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
}

// newBookHandler creates a new bookHandler.
func newBookHandler(bs portssvc.BookSvcFacade) *bookHandler {
	return &bookHandler{bookService: bs}
}

// registerBookReadRoutes registers the public catalog reads. Browsing the
// shelves does not require an account.
func registerBookReadRoutes(rg *gin.RouterGroup, bookService portssvc.BookSvcFacade) {
	h := newBookHandler(bookService)

	books := rg.Group("/books")
	{
		books.GET("", h.listBooks)
		books.GET("/:id", h.getBook)
	}
}

// registerBookWriteRoutes registers the authenticated catalog mutations.
func registerBookWriteRoutes(rg *gin.RouterGroup, bookService portssvc.BookSvcFacade) {
	h := newBookHandler(bookService)

	books := rg.Group("/books")
	{
		books.POST("", h.createBook)
		books.PATCH("/:id", h.updateBook)
		books.DELETE("/:id", h.deleteBook)
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

// listBooks godoc
// @Summary List books
// @Description Retrieves the catalog, optionally filtered by title/author substring
// @Tags books
// @Produce json
// @Param title query string false "Case-insensitive title substring"
// @Param author query string false "Case-insensitive author substring"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.BookListItemResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list books"
// @Router /books [get]
func (h *bookHandler) listBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBooksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListBooks", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	books, err := h.bookService.ListBooks(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list books from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list books"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBookResponse(books))
}

// getBook godoc
// @Summary Get a book by ID
// @Description Retrieves full details for a single book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Failed to retrieve book"
// @Router /books/{id} [get]
func (h *bookHandler) getBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	book, err := h.bookService.GetBookByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else {
			logger.Error("Failed to get book from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve book"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// createBook godoc
// @Summary Create a new book
// @Description Adds a book to the catalog (staff only)
// @Tags books
// @Accept json
// @Produce json
// @Param book body dto.CreateBookRequest true "Book details"
// @Success 201 {object} dto.BookResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create book"
// @Security BearerAuth
// @Router /books [post]
func (h *bookHandler) createBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requester, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		logger.Error("Requester not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), req, requester)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating book", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create book in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		}
		return
	}

	logger.Info("Book created successfully", slog.Int64("book_id", book.BookID))
	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

// updateBook godoc
// @Summary Update a book
// @Description Partially updates a book's details (staff only)
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID to update"
// @Param book body dto.UpdateBookRequest true "Book fields to update"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Failed to update book"
// @Security BearerAuth
// @Router /books/{id} [patch]
func (h *bookHandler) updateBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requester, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	book, err := h.bookService.UpdateBook(c.Request.Context(), bookID, req, requester)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating book", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update book in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// deleteBook godoc
// @Summary Delete a book
// @Description Removes a book and its borrowings (staff only)
// @Tags books
// @Produce json
// @Param id path int true "Book ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Failed to delete book"
// @Security BearerAuth
// @Router /books/{id} [delete]
func (h *bookHandler) deleteBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	requester, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.bookService.DeleteBook(c.Request.Context(), bookID, requester)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		default:
			logger.Error("Failed to delete book in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		}
		return
	}

	logger.Info("Book deleted successfully", slog.Int64("book_id", bookID))
	c.Status(http.StatusNoContent)
}
