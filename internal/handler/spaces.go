package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/model"
	"github.com/coworkflow/coworkflow/internal/repository"
)

// SpacesHandler serves the space catalogue.
type SpacesHandler struct {
	Spaces *repository.SpaceRepo
}

func NewSpacesHandler(s *repository.SpaceRepo) *SpacesHandler {
	return &SpacesHandler{Spaces: s}
}

type createSpaceReq struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Capacity     int     `json:"capacity" validate:"gt=0"`
	PricePerHour float64 `json:"price_per_hour" validate:"gt=0"`
	PhotoURL     string  `json:"photo_url"`
}

// default time slots reported by Availability
var defaultSlots = []string{"09:00", "10:00", "14:00"}

func (h *SpacesHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Spaces.List(c.Request().Context()))
}

func (h *SpacesHandler) Create(c echo.Context) error {
	var req createSpaceReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	s := h.Spaces.Create(c.Request().Context(), model.Space{
		Name:         req.Name,
		Description:  req.Description,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		PhotoURL:     req.PhotoURL,
	})
	return c.JSON(http.StatusCreated, echo.Map{"id": s.ID})
}

func (h *SpacesHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	s, err := h.Spaces.Get(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "Space not found")
	}
	return c.JSON(http.StatusOK, s)
}

// Update applies a partial update and returns the full space.
func (h *SpacesHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	var patch model.SpacePatch
	if msg, ok := bindValid(c, &patch); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	s, err := h.Spaces.Update(c.Request().Context(), id, patch)
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "Space not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SpacesHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	if err := h.Spaces.Delete(c.Request().Context(), id); err != nil {
		return errorJSON(c, http.StatusNotFound, "Space not found")
	}
	return messageJSON(c, http.StatusOK, "Space deleted")
}

// Availability reports a fixed slot list; no booking data is consulted.
func (h *SpacesHandler) Availability(c echo.Context) error {
	if _, ok := pathID(c, "id"); !ok {
		return badID(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"available": true, "slots": defaultSlots})
}
