package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geotrace/geolocation-api/internal/core/ports"
)

// HistoryHandler handles HTTP requests for search history. Every operation is
// scoped to the identity resolved from token claims.
type HistoryHandler struct {
	service ports.HistoryService
}

func NewHistoryHandler(service ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List handles GET /api/history.
//
// @Summary      List the caller's search history, newest first
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listHistoriesResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /history [get]
func (h *HistoryHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	histories, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listHistoriesResponse{Histories: histories})
}

// Add handles POST /api/history.
//
// @Summary      Record one IP search for the caller
// @Tags         history
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addHistoryRequest  true  "Searched IP and its geolocation payload"
// @Success      201   {object}  addHistoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /history [post]
func (h *HistoryHandler) Add(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addHistoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "IP address and location are required."})
	}

	history, err := h.service.Add(c.Request().Context(), ports.AddHistoryInput{
		UserID:    userID,
		IPAddress: req.IPAddress,
		Location:  string(req.Location),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, addHistoryResponse{Message: "History added", History: history})
}

// Delete handles DELETE /api/history.
//
// @Summary      Delete the caller's history records by id
// @Tags         history
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteHistoriesRequest  true  "Record ids to delete"
// @Success      200   {object}  deleteHistoriesResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /history [delete]
func (h *HistoryHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req deleteHistoriesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "History IDs are required."})
	}

	deleted, err := h.service.Delete(c.Request().Context(), userID, req.IDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteHistoriesResponse{
		Message: fmt.Sprintf("%d history entries deleted.", deleted),
	})
}
