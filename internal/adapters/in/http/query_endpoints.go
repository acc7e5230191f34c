package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// TrackingHistoryItem is one history row in the public tracking response.
type TrackingHistoryItem struct {
	Status       string    `json:"status"`
	Observations string    `json:"observations,omitempty"`
	ChangedAt    time.Time `json:"changedAt"`
}

// TrackingResponse is the public tracking payload.
type TrackingResponse struct {
	Number        string                `json:"number"`
	Status        string                `json:"status"`
	RecipientName string                `json:"recipientName"`
	City          string                `json:"city"`
	CreatedAt     time.Time             `json:"createdAt"`
	DeliveredAt   *time.Time            `json:"deliveredAt,omitempty"`
	History       []TrackingHistoryItem `json:"history"`
}

// TrackGuide handles GET /api/v1/tracking/:guideNumber.
func (s *Server) TrackGuide(ctx echo.Context) error {
	number, err := kernel.GuideNumberFromString(ctx.Param("guideNumber"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewTrackGuideQuery(number)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.trackGuideHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	history := make([]TrackingHistoryItem, len(result.History))
	for i, item := range result.History {
		history[i] = TrackingHistoryItem{
			Status:       item.Status,
			Observations: item.Observations,
			ChangedAt:    item.ChangedAt,
		}
	}

	return ctx.JSON(http.StatusOK, TrackingResponse{
		Number:        result.Number,
		Status:        result.Status,
		RecipientName: result.RecipientName,
		City:          result.City,
		CreatedAt:     result.CreatedAt,
		DeliveredAt:   result.DeliveredAt,
		History:       history,
	})
}

// PendingGuideResponse is one row in the coordinator's pending pool.
type PendingGuideResponse struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	BusinessID string    `json:"businessId"`
	City       string    `json:"city"`
	Priority   int       `json:"priority"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GetPendingGuides handles GET /api/v1/guides/pending.
func (s *Server) GetPendingGuides(ctx echo.Context) error {
	results, err := s.pendingGuidesHandler.Handle(ctx.Request().Context(), queries.NewGetPendingGuidesQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]PendingGuideResponse, len(results))
	for i, item := range results {
		response[i] = PendingGuideResponse{
			ID:         item.ID.String(),
			Number:     item.Number,
			BusinessID: item.BusinessID.String(),
			City:       item.City,
			Priority:   item.Priority,
			CreatedAt:  item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ActiveGuideResponse is one row in a courier's workload.
type ActiveGuideResponse struct {
	ID               string     `json:"id"`
	Number           string     `json:"number"`
	Status           string     `json:"status"`
	RecipientName    string     `json:"recipientName"`
	RecipientAddress string     `json:"recipientAddress"`
	City             string     `json:"city"`
	Priority         int        `json:"priority"`
	AssignmentDate   *time.Time `json:"assignmentDate,omitempty"`
}

// GetCourierActiveGuides handles GET /api/v1/couriers/:courierID/guides.
func (s *Server) GetCourierActiveGuides(ctx echo.Context) error {
	courierID, err := s.pathUUID(ctx, "courierID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetCourierActiveGuidesQuery(courierID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	results, err := s.activeGuidesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]ActiveGuideResponse, len(results))
	for i, item := range results {
		response[i] = ActiveGuideResponse{
			ID:               item.ID.String(),
			Number:           item.Number,
			Status:           item.Status,
			RecipientName:    item.RecipientName,
			RecipientAddress: item.RecipientAddress,
			City:             item.City,
			Priority:         item.Priority,
			AssignmentDate:   item.AssignmentDate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CommissionItemResponse is one delivered guide in the commission statement.
type CommissionItemResponse struct {
	GuideID     string    `json:"guideId"`
	Number      string    `json:"number"`
	DeliveredAt time.Time `json:"deliveredAt"`
	BasePrice   string    `json:"basePrice"`
	Rate        string    `json:"rate"`
	Commission  string    `json:"commission"`
}

// GetCommissionHistory handles GET /api/v1/couriers/:courierID/commissions.
func (s *Server) GetCommissionHistory(ctx echo.Context) error {
	courierID, err := s.pathUUID(ctx, "courierID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	from, to, err := s.parseWindow(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetCommissionHistoryQuery(courierID, from, to)
	if err != nil {
		return s.respondError(ctx, err)
	}

	results, err := s.commissionHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]CommissionItemResponse, len(results))
	for i, item := range results {
		response[i] = CommissionItemResponse{
			GuideID:     item.GuideID.String(),
			Number:      item.Number,
			DeliveredAt: item.DeliveredAt,
			BasePrice:   item.BasePrice.String(),
			Rate:        item.Rate,
			Commission:  item.Commission.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TotalCommissionsResponse summarizes a courier's earnings over a window.
type TotalCommissionsResponse struct {
	Deliveries      int    `json:"deliveries"`
	TotalBasePrice  string `json:"totalBasePrice"`
	TotalCommission string `json:"totalCommission"`
	Rate            string `json:"rate"`
}

// GetTotalCommissions handles GET /api/v1/couriers/:courierID/commissions/total.
func (s *Server) GetTotalCommissions(ctx echo.Context) error {
	courierID, err := s.pathUUID(ctx, "courierID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	from, to, err := s.parseWindow(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetTotalCommissionsQuery(courierID, from, to)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.totalCommissionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TotalCommissionsResponse{
		Deliveries:      result.Deliveries,
		TotalBasePrice:  result.TotalBasePrice.String(),
		TotalCommission: result.TotalCommission.String(),
		Rate:            result.Rate,
	})
}

// MonthlyCommissionResponse is one month's earnings in the yearly breakdown.
type MonthlyCommissionResponse struct {
	Month           int    `json:"month"`
	Deliveries      int    `json:"deliveries"`
	TotalCommission string `json:"totalCommission"`
}

// GetMonthlyCommissions handles GET /api/v1/couriers/:courierID/commissions/monthly.
func (s *Server) GetMonthlyCommissions(ctx echo.Context) error {
	courierID, err := s.pathUUID(ctx, "courierID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	year, err := strconv.Atoi(ctx.QueryParam("year"))
	if err != nil {
		return s.badRequest(ctx, "year must be an integer")
	}

	query, err := queries.NewGetMonthlyCommissionsQuery(courierID, year)
	if err != nil {
		return s.respondError(ctx, err)
	}

	results, err := s.monthlyCommissionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]MonthlyCommissionResponse, len(results))
	for i, item := range results {
		response[i] = MonthlyCommissionResponse{
			Month:           int(item.Month),
			Deliveries:      item.Deliveries,
			TotalCommission: item.TotalCommission.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// parseWindow reads the from/to query parameters as YYYY-MM-DD dates.
func (s *Server) parseWindow(ctx echo.Context) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", ctx.QueryParam("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			"from", fmt.Errorf("expected a YYYY-MM-DD date: %w", err),
		)
	}
	to, err := time.Parse("2006-01-02", ctx.QueryParam("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			"to", fmt.Errorf("expected a YYYY-MM-DD date: %w", err),
		)
	}
	return from, to, nil
}
