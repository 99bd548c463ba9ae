package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/transport/http/middleware"
)

// ErrorResponse represents a generic error payload with the request ID for
// correlation against server logs.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response carrying the request ID from context.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:     errorMsg,
		RequestID: middleware.GetRequestID(c),
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse describes the response returned for a successful login.
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	Identity    IdentityPayload `json:"identity"`
}

// IdentityPayload is the API view of an admin, employee, or member. Fields
// that do not apply to the identity's role are omitted.
type IdentityPayload struct {
	ID             int64      `json:"id"`
	Role           string     `json:"role"`
	Name           string     `json:"name"`
	Username       string     `json:"username,omitempty"`
	Email          string     `json:"email,omitempty"`
	JobRole        *string    `json:"job_role,omitempty"`
	Salary         *int64     `json:"salary,omitempty"`
	PhoneNumber    *string    `json:"phone_number,omitempty"`
	MembershipPlan *string    `json:"membership_plan,omitempty"`
	JoinDate       *string    `json:"join_date,omitempty"`
	Status         *string    `json:"status,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AdminCreateRequest defines the payload for creating an administrator.
type AdminCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmployeeCreateRequest defines the payload for creating an employee.
type EmployeeCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Salary   int64  `json:"salary"`
}

// MemberCreateRequest defines the payload for registering a gym member.
type MemberCreateRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	PhoneNumber    string `json:"phone_number"`
	MembershipPlan string `json:"membership_plan"`
	JoinDate       string `json:"join_date"`
}

// IdentityListResponse wraps a collection listing.
type IdentityListResponse struct {
	Identities []IdentityPayload `json:"identities"`
	Total      int               `json:"total"`
}

// LoginAuditPayload is the API view of a single login audit entry.
type LoginAuditPayload struct {
	ID             string    `json:"id"`
	Identifier     string    `json:"identifier"`
	IdentityStatus string    `json:"identity_status"`
	LoginStatus    string    `json:"login_status"`
	CreatedAt      time.Time `json:"created_at"`
}

// LoginHistoryResponse wraps an identity's login audit trail.
type LoginHistoryResponse struct {
	History []LoginAuditPayload `json:"history"`
	Total   int                 `json:"total"`
}

// EquipmentCreateRequest defines the payload for adding an equipment item.
type EquipmentCreateRequest struct {
	Name      string `json:"name" binding:"required"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Category  string `json:"category"`
}

// EquipmentPayload is the API view of an inventory item. UnitPrice is in the
// smallest currency unit.
type EquipmentPayload struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EquipmentListResponse wraps the inventory listing.
type EquipmentListResponse struct {
	Equipment []EquipmentPayload `json:"equipment"`
	Total     int                `json:"total"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse describes readiness probe results with dependency checks.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// newIdentityPayload converts a domain identity to its API representation.
func newIdentityPayload(identity domain.Identity) IdentityPayload {
	payload := IdentityPayload{
		ID:        identity.ID,
		Role:      string(identity.Role),
		Name:      identity.Name,
		CreatedAt: identity.CreatedAt,
		UpdatedAt: identity.UpdatedAt,
	}

	if identity.Role == domain.RoleAdmin {
		payload.Username = identity.Identifier
	} else {
		payload.Email = identity.Identifier
	}

	if identity.EmployeeRole != nil {
		jobRole := string(*identity.EmployeeRole)
		payload.JobRole = &jobRole
	}
	if identity.Salary != nil {
		payload.Salary = identity.Salary
	}
	if identity.Phone != nil {
		payload.PhoneNumber = identity.Phone
	}
	if identity.MembershipPlan != nil {
		payload.MembershipPlan = identity.MembershipPlan
	}
	if identity.JoinDate != nil {
		joined := identity.JoinDate.UTC().Format("2006-01-02")
		payload.JoinDate = &joined
	}
	if identity.Status != nil {
		status := string(*identity.Status)
		payload.Status = &status
	}

	return payload
}

// newLoginAuditPayload converts a domain audit entry to its API representation.
func newLoginAuditPayload(entry domain.LoginAuditEntry) LoginAuditPayload {
	return LoginAuditPayload{
		ID:             entry.ID,
		Identifier:     entry.Identifier,
		IdentityStatus: entry.IdentityStatus,
		LoginStatus:    string(entry.Outcome),
		CreatedAt:      entry.CreatedAt,
	}
}

// newEquipmentPayload converts a domain equipment item to its API representation.
func newEquipmentPayload(item domain.Equipment) EquipmentPayload {
	return EquipmentPayload{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		Category:  item.Category,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
