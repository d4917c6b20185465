package directory

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/patients", h.Search)
	e.GET("/patients/consent", h.CheckConsent)
}

func (h *Handler) Search(c echo.Context) error {
	records, err := h.svc.SearchByCondition(c.Request().Context(), c.QueryParam("disease"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) CheckConsent(c echo.Context) error {
	result, err := h.svc.CheckConsent(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
