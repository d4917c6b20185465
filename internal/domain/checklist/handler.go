package checklist

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
	e.POST("/generate-checklist", h.Generate)
	e.POST("/save-checklist", h.Save)
	e.GET("/get-checklists/:userId", h.ListByUser)
}

type generateRequest struct {
	PatientInfo string `json:"patientInfo"`
}

func (h *Handler) Generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("Invalid request body")
	}

	items, err := h.svc.Generate(c.Request().Context(), req.PatientInfo)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]string{"checklist": items})
}

type saveRequest struct {
	UserID      string   `json:"userId"`
	PatientInfo string   `json:"patientInfo"`
	Checklist   []string `json:"checklist"`
}

func (h *Handler) Save(c echo.Context) error {
	var req saveRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("Invalid request body")
	}

	if _, err := h.svc.Save(c.Request().Context(), req.UserID, req.PatientInfo, req.Checklist); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Checklist saved successfully!"})
}

func (h *Handler) ListByUser(c echo.Context) error {
	records, err := h.svc.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]*Record{"checklists": records})
}
