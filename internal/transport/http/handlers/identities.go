package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/repository"
	"github.com/maverick2062/Gym-Management/internal/usecase"
)

// IdentityHandler exposes the CRUD and audit-history endpoints for one
// identity collection. The same handler serves admins, employees, and
// members; the bound role selects the collection.
type IdentityHandler struct {
	role         domain.Role
	identities   *usecase.IdentityService
	registration *usecase.RegistrationService
}

// NewIdentityHandler constructs a handler for the given role's collection.
func NewIdentityHandler(role domain.Role, identities *usecase.IdentityService, registration *usecase.RegistrationService) *IdentityHandler {
	return &IdentityHandler{role: role, identities: identities, registration: registration}
}

// RegisterRoutes binds the collection routes. Read endpoints go on the view
// group and mutating endpoints on the mutate group so callers can guard them
// with different role sets. Passing the same group for both is fine.
func (h *IdentityHandler) RegisterRoutes(view, mutate *gin.RouterGroup) {
	view.GET("", h.list)
	view.GET("/:id", h.get)
	view.GET("/:id/login-history", h.loginHistory)
	mutate.POST("", h.create)
	mutate.PATCH("/:id", h.update)
	mutate.DELETE("/:id", h.delete)
}

func (h *IdentityHandler) list(c *gin.Context) {
	identities, err := h.identities.List(c.Request.Context(), h.role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list "+string(h.role)+"s"))
		return
	}

	payloads := make([]IdentityPayload, 0, len(identities))
	for _, identity := range identities {
		payloads = append(payloads, newIdentityPayload(identity))
	}

	c.JSON(http.StatusOK, IdentityListResponse{Identities: payloads, Total: len(payloads)})
}

func (h *IdentityHandler) create(c *gin.Context) {
	var (
		identity domain.Identity
		err      error
	)

	switch h.role {
	case domain.RoleAdmin:
		var req AdminCreateRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payload"))
			return
		}
		identity, err = h.registration.RegisterAdmin(c.Request.Context(), usecase.RegisterAdminInput{
			Name:     req.Name,
			Username: req.Username,
			Password: req.Password,
		})
	case domain.RoleEmployee:
		var req EmployeeCreateRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payload"))
			return
		}
		identity, err = h.registration.RegisterEmployee(c.Request.Context(), usecase.RegisterEmployeeInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
			Salary:   req.Salary,
		})
	default:
		var req MemberCreateRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payload"))
			return
		}
		input := usecase.RegisterMemberInput{
			Name:           req.Name,
			Email:          req.Email,
			Password:       req.Password,
			Phone:          req.PhoneNumber,
			MembershipPlan: req.MembershipPlan,
		}
		if req.JoinDate != "" {
			joined, parseErr := parseDate(req.JoinDate)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, NewErrorResponse(c, "join_date must be formatted YYYY-MM-DD"))
				return
			}
			input.JoinDate = joined
		}
		identity, err = h.registration.RegisterMember(c.Request.Context(), input)
	}

	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newIdentityPayload(identity))
}

func (h *IdentityHandler) get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	identity, err := h.identities.Get(c.Request.Context(), h.role, id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: string(h.role) + " not found"},
		}, http.StatusInternalServerError, "failed to load "+string(h.role))
		return
	}

	c.JSON(http.StatusOK, newIdentityPayload(*identity))
}

func (h *IdentityHandler) update(c *gin.Context) {
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

	identity, err := h.identities.Update(c.Request.Context(), h.role, id, changes)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrValidation, Status: http.StatusBadRequest},
			{Err: repository.ErrInvalidColumn, Status: http.StatusBadRequest, Message: "attribute cannot be updated"},
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: string(h.role) + " not found"},
			{Err: repository.ErrDuplicateIdentifier, Status: http.StatusConflict, Message: "identifier already registered"},
		}, http.StatusInternalServerError, "failed to update "+string(h.role))
		return
	}

	c.JSON(http.StatusOK, newIdentityPayload(*identity))
}

func (h *IdentityHandler) delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.identities.Delete(c.Request.Context(), h.role, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to delete "+string(h.role)))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, NewErrorResponse(c, string(h.role)+" not found"))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *IdentityHandler) loginHistory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	history, err := h.identities.LoginHistory(c.Request.Context(), h.role, id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: string(h.role) + " not found"},
		}, http.StatusInternalServerError, "failed to load login history")
		return
	}

	payloads := make([]LoginAuditPayload, 0, len(history))
	for _, entry := range history {
		payloads = append(payloads, newLoginAuditPayload(entry))
	}

	c.JSON(http.StatusOK, LoginHistoryResponse{History: payloads, Total: len(payloads)})
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// parseIDParam extracts the numeric :id path parameter, writing a 400 on
// malformed input.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "id must be a positive integer"))
		return 0, false
	}
	return id, true
}
