package account

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safelink/safelink/internal/platform/httperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.POST("/userinfo/:userid", h.GetProfile)
	e.PATCH("/userinfo/:email/consent", h.SetConsent)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("Invalid request body")
	}

	userID, err := h.svc.Register(c.Request().Context(), RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "User registered successfully",
		"userId":  userID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("Invalid request body")
	}

	userID, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Login successful",
		"userId":  userID,
	})
}

func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.svc.GetProfile(c.Request().Context(), c.Param("userid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

type consentRequest struct {
	Consent *bool `json:"consent"`
}

func (h *Handler) SetConsent(c echo.Context) error {
	var req consentRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("Invalid request body")
	}
	if req.Consent == nil {
		return httperr.Validation("Consent value is required")
	}

	consent, err := h.svc.SetConsent(c.Request().Context(), c.Param("email"), *req.Consent)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"consent": consent,
	})
}
