package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/repository"
	"github.com/maverick2062/Gym-Management/internal/usecase"
)

// AuthHandler exposes authentication and member self-registration endpoints.
type AuthHandler struct {
	auth         *usecase.AuthService
	registration *usecase.RegistrationService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService, registration *usecase.RegistrationService) *AuthHandler {
	return &AuthHandler{auth: auth, registration: registration}
}

// RegisterRoutes binds authentication routes on the provided group.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/login/:role", h.login)
	r.POST("/register", h.register)
}

func (h *AuthHandler) login(c *gin.Context) {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown role"))
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid login payload"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), role, req.Identifier, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrValidation, Status: http.StatusBadRequest, Message: "identifier and password are required"},
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"},
		}, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: result.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(result.ExpiresAt).Seconds()),
		Identity:    newIdentityPayload(result.Identity),
	})
}

// register is the public sign-up endpoint for gym members. Staff accounts are
// created through the protected collection routes.
func (h *AuthHandler) register(c *gin.Context) {
	var req MemberCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
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
		joined, err := parseDate(req.JoinDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "join_date must be formatted YYYY-MM-DD"))
			return
		}
		input.JoinDate = joined
	}

	identity, err := h.registration.RegisterMember(c.Request.Context(), input)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newIdentityPayload(identity))
}

func respondRegistrationError(c *gin.Context, err error) {
	RespondWithMappedError(c, err, []ErrorCase{
		{Err: usecase.ErrValidation, Status: http.StatusBadRequest},
		{Err: repository.ErrDuplicateIdentifier, Status: http.StatusConflict, Message: "identifier already registered"},
	}, http.StatusInternalServerError, "failed to create account")
}
