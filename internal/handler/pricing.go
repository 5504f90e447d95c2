package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/model"
	"github.com/coworkflow/coworkflow/internal/service"
)

type priceReq struct {
	SpaceID   uint64 `json:"space_id"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	UserPlan  string `json:"user_plan"`
}

// CalculatePrice quotes a booking.  The plan defaults to basic.
func CalculatePrice(c echo.Context) error {
	var req priceReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	start, err := model.ParseTimestamp(req.StartTime)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid start_time")
	}
	end, err := model.ParseTimestamp(req.EndTime)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid end_time")
	}
	plan := req.UserPlan
	if plan == "" {
		plan = service.PlanBasic
	}
	return c.JSON(http.StatusOK, service.Calculate(service.PriceRequest{
		SpaceID: req.SpaceID,
		Start:   start,
		End:     end,
		Plan:    plan,
	}))
}
