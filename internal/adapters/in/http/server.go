// Package http exposes the tracking API over echo. Coordinators, couriers
// and businesses use the authenticated /api/v1 surface; /api/v1/tracking is
// the public consultation endpoint keyed only by guide number.
package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/logger"
	"tracking/internal/pkg/metrics"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createGuideHandler      commands.CreateGuideCommandHandler
	assignCourierHandler    commands.AssignCourierCommandHandler
	acceptAssignmentHandler commands.AcceptAssignmentCommandHandler
	declineHandler          commands.DeclineAssignmentCommandHandler
	reassignHandler         commands.ReassignCourierCommandHandler
	updateStateHandler      commands.UpdateGuideStateCommandHandler
	cancelGuideHandler      commands.CancelGuideCommandHandler
	rejectGuideHandler      commands.RejectGuideCommandHandler
	reportIncidentHandler   commands.ReportIncidentCommandHandler
	resolveIncidentHandler  commands.ResolveIncidentCommandHandler
	attachEvidenceHandler   commands.AttachEvidenceCommandHandler
	discountHandler         commands.CalculateMonthlyDiscountCommandHandler

	trackGuideHandler         queries.TrackGuideQueryHandler
	pendingGuidesHandler      queries.GetPendingGuidesQueryHandler
	activeGuidesHandler       queries.GetCourierActiveGuidesQueryHandler
	commissionHistoryHandler  queries.GetCommissionHistoryQueryHandler
	totalCommissionsHandler   queries.GetTotalCommissionsQueryHandler
	monthlyCommissionsHandler queries.GetMonthlyCommissionsQueryHandler

	log     logger.Logger
	metrics *metrics.Metrics
}

// Handlers bundles every use case the server serves.
type Handlers struct {
	CreateGuide      commands.CreateGuideCommandHandler
	AssignCourier    commands.AssignCourierCommandHandler
	AcceptAssignment commands.AcceptAssignmentCommandHandler
	Decline          commands.DeclineAssignmentCommandHandler
	Reassign         commands.ReassignCourierCommandHandler
	UpdateState      commands.UpdateGuideStateCommandHandler
	CancelGuide      commands.CancelGuideCommandHandler
	RejectGuide      commands.RejectGuideCommandHandler
	ReportIncident   commands.ReportIncidentCommandHandler
	ResolveIncident  commands.ResolveIncidentCommandHandler
	AttachEvidence   commands.AttachEvidenceCommandHandler
	Discount         commands.CalculateMonthlyDiscountCommandHandler

	TrackGuide         queries.TrackGuideQueryHandler
	PendingGuides      queries.GetPendingGuidesQueryHandler
	ActiveGuides       queries.GetCourierActiveGuidesQueryHandler
	CommissionHistory  queries.GetCommissionHistoryQueryHandler
	TotalCommissions   queries.GetTotalCommissionsQueryHandler
	MonthlyCommissions queries.GetMonthlyCommissionsQueryHandler
}

// NewServer creates the HTTP server over the given use case handlers.
func NewServer(h Handlers, log logger.Logger, m *metrics.Metrics) *Server {
	return &Server{
		createGuideHandler:        h.CreateGuide,
		assignCourierHandler:      h.AssignCourier,
		acceptAssignmentHandler:   h.AcceptAssignment,
		declineHandler:            h.Decline,
		reassignHandler:           h.Reassign,
		updateStateHandler:        h.UpdateState,
		cancelGuideHandler:        h.CancelGuide,
		rejectGuideHandler:        h.RejectGuide,
		reportIncidentHandler:     h.ReportIncident,
		resolveIncidentHandler:    h.ResolveIncident,
		attachEvidenceHandler:     h.AttachEvidence,
		discountHandler:           h.Discount,
		trackGuideHandler:         h.TrackGuide,
		pendingGuidesHandler:      h.PendingGuides,
		activeGuidesHandler:       h.ActiveGuides,
		commissionHistoryHandler:  h.CommissionHistory,
		totalCommissionsHandler:   h.TotalCommissions,
		monthlyCommissionsHandler: h.MonthlyCommissions,
		log:                       log,
		metrics:                   m,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = &requestValidator{validate: validator.New()}

	api := e.Group("/api/v1")

	api.POST("/guides", s.CreateGuide)
	api.GET("/guides/pending", s.GetPendingGuides)
	api.POST("/guides/:guideID/assign", s.AssignCourier)
	api.POST("/guides/:guideID/accept", s.AcceptAssignment)
	api.POST("/guides/:guideID/decline", s.DeclineAssignment)
	api.POST("/guides/:guideID/reassign", s.ReassignCourier)
	api.POST("/guides/:guideID/state", s.UpdateGuideState)
	api.POST("/guides/:guideID/cancel", s.CancelGuide)
	api.POST("/guides/:guideID/incidents", s.ReportIncident)
	api.POST("/guides/:guideID/evidences", s.AttachEvidence)
	api.POST("/incidents/:incidentID/resolve", s.ResolveIncident)

	api.GET("/couriers/:courierID/guides", s.GetCourierActiveGuides)
	api.GET("/couriers/:courierID/commissions", s.GetCommissionHistory)
	api.GET("/couriers/:courierID/commissions/total", s.GetTotalCommissions)
	api.GET("/couriers/:courierID/commissions/monthly", s.GetMonthlyCommissions)

	api.POST("/businesses/:businessID/discounts", s.CalculateMonthlyDiscount)

	// Public surface, no authentication.
	api.GET("/tracking/:guideNumber", s.TrackGuide)
	api.POST("/tracking/:guideNumber/reject", s.RejectGuide)
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain error kinds onto HTTP status codes.
func (s *Server) respondError(ctx echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ctx.JSON(httpErr.Code, ErrorResponse{
			Code:    httpErr.Code,
			Message: http.StatusText(httpErr.Code),
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConcurrentModification):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrAlreadyFinalized),
		errors.Is(err, errs.ErrBusinessConstraintViolation),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.metrics.ErrorsCount.WithLabelValues(ctx.Path()).Inc()
		s.log.Error("request failed",
			"path", ctx.Path(),
			"error", err,
		)
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
