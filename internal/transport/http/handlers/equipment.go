package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maverick2062/Gym-Management/internal/repository"
	"github.com/maverick2062/Gym-Management/internal/usecase"
)

// EquipmentHandler exposes the inventory endpoints.
type EquipmentHandler struct {
	equipment *usecase.EquipmentService
}

// NewEquipmentHandler constructs EquipmentHandler.
func NewEquipmentHandler(equipment *usecase.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

// RegisterRoutes binds the inventory routes. The mutating routes expect the
// caller to have attached guards on a nested group.
func (h *EquipmentHandler) RegisterRoutes(view, mutate *gin.RouterGroup) {
	view.GET("", h.list)
	view.GET("/:id", h.get)
	mutate.POST("", h.create)
	mutate.PATCH("/:id", h.update)
	mutate.DELETE("/:id", h.delete)
}

func (h *EquipmentHandler) list(c *gin.Context) {
	items, err := h.equipment.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list equipment"))
		return
	}

	payloads := make([]EquipmentPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, newEquipmentPayload(item))
	}

	c.JSON(http.StatusOK, EquipmentListResponse{Equipment: payloads, Total: len(payloads)})
}

func (h *EquipmentHandler) get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.equipment.Get(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "equipment not found"},
		}, http.StatusInternalServerError, "failed to load equipment")
		return
	}

	c.JSON(http.StatusOK, newEquipmentPayload(*item))
}

func (h *EquipmentHandler) create(c *gin.Context) {
	var req EquipmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payload"))
		return
	}

	item, err := h.equipment.Create(c.Request.Context(), usecase.CreateEquipmentInput{
		Name:      req.Name,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Category:  req.Category,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrValidation, Status: http.StatusBadRequest},
		}, http.StatusInternalServerError, "failed to create equipment")
		return
	}

	c.JSON(http.StatusCreated, newEquipmentPayload(item))
}

func (h *EquipmentHandler) update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payload"))
		return
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "no attributes to update"))
		return
	}

	item, err := h.equipment.Update(c.Request.Context(), id, changes)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrValidation, Status: http.StatusBadRequest},
			{Err: repository.ErrInvalidColumn, Status: http.StatusBadRequest, Message: "attribute cannot be updated"},
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "equipment not found"},
		}, http.StatusInternalServerError, "failed to update equipment")
		return
	}

	c.JSON(http.StatusOK, newEquipmentPayload(*item))
}

func (h *EquipmentHandler) delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.equipment.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to delete equipment"))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, NewErrorResponse(c, "equipment not found"))
		return
	}

	c.Status(http.StatusNoContent)
}
