package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// CreateGuideRequest is the payload for registering a new tracking guide.
type CreateGuideRequest struct {
	BusinessID     string  `json:"businessId" validate:"required,uuid"`
	OriginBranchID string  `json:"originBranchId" validate:"required,uuid"`
	Recipient      struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address" validate:"required"`
		City    string `json:"city"`
		State   string `json:"state"`
	} `json:"recipient" validate:"required"`
	BasePrice    string  `json:"basePrice" validate:"required"`
	Observations string  `json:"observations"`
	Priority     string  `json:"priority"`
	CreatedBy    *string `json:"createdBy" validate:"omitempty,uuid"`
}

// CreateGuide handles POST /api/v1/guides.
func (s *Server) CreateGuide(ctx echo.Context) error {
	var req CreateGuideRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	businessID, err := kernel.UUIDFromString(req.BusinessID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	originBranchID, err := kernel.UUIDFromString(req.OriginBranchID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	recipient, err := guide.NewRecipient(req.Recipient.Name, req.Recipient.Address, req.Recipient.City, req.Recipient.State)
	if err != nil {
		return s.respondError(ctx, err)
	}

	amount, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		return s.badRequest(ctx, "basePrice must be a decimal number")
	}
	basePrice, err := kernel.NewMoney(amount)
	if err != nil {
		return s.respondError(ctx, err)
	}

	priority := guide.PriorityNormal
	if req.Priority != "" {
		priority, err = guide.ParsePriority(req.Priority)
		if err != nil {
			return s.respondError(ctx, err)
		}
	}

	var createdBy *kernel.UUID
	if req.CreatedBy != nil {
		id, parseErr := kernel.UUIDFromString(*req.CreatedBy)
		if parseErr != nil {
			return s.respondError(ctx, parseErr)
		}
		createdBy = &id
	}

	guideID := kernel.NewUUID()
	cmd, err := commands.NewCreateGuideCommand(
		guideID, businessID, originBranchID,
		recipient, basePrice,
		req.Observations, priority, createdBy,
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.createGuideHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	s.metrics.GuidesCreated.Inc()

	return ctx.JSON(http.StatusCreated, map[string]string{"id": guideID.String()})
}

// AssignCourierRequest is the payload for assigning a courier to a guide.
type AssignCourierRequest struct {
	CourierID     string `json:"courierId" validate:"required,uuid"`
	CoordinatorID string `json:"coordinatorId" validate:"required,uuid"`
}

// AssignCourier handles POST /api/v1/guides/:guideID/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	guideID, err := s.pathUUID(ctx, "guideID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req AssignCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	coordinatorID, err := kernel.UUIDFromString(req.CoordinatorID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(guideID, courierID, coordinatorID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptAssignmentRequest identifies the accepting courier.
type AcceptAssignmentRequest struct {
	CourierID string `json:"courierId" validate:"required,uuid"`
}

// AcceptAssignment handles POST /api/v1/guides/:guideID/accept.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	guideID, err := s.pathUUID(ctx, "guideID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req AcceptAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptAssignmentCommand(guideID, courierID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.acceptAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeclineAssignmentRequest identifies the declining courier and their reason.
type DeclineAssignmentRequest struct {
	CourierID string `json:"courierId" validate:"required,uuid"`
	Reason    string `json:"reason" validate:"required"`
}

// DeclineAssignment handles POST /api/v1/guides/:guideID/decline.
func (s *Server) DeclineAssignment(ctx echo.Context) error {
	guideID, err := s.pathUUID(ctx, "guideID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req DeclineAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewDeclineAssignmentCommand(guideID, courierID, req.Reason)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.declineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReassignCourierRequest is the payload for moving a guide to another courier.
type ReassignCourierRequest struct {
	NewCourierID  string `json:"newCourierId" validate:"required,uuid"`
	CoordinatorID string `json:"coordinatorId" validate:"required,uuid"`
	Reason        string `json:"reason" validate:"required"`
}

// ReassignCourier handles POST /api/v1/guides/:guideID/reassign.
func (s *Server) ReassignCourier(ctx echo.Context) error {
	guideID, err := s.pathUUID(ctx, "guideID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req ReassignCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	newCourierID, err := kernel.UUIDFromString(req.NewCourierID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	coordinatorID, err := kernel.UUIDFromString(req.CoordinatorID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewReassignCourierCommand(guideID, newCourierID, req.Reason, coordinatorID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.reassignHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LocationPayload is an optional GPS stamp attached to transitions and
// incident reports.
type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateGuideStateRequest is the payload for a lifecycle transition.
type UpdateGuideStateRequest struct {
	Status       string           `json:"status" validate:"required"`
	ActorID      string           `json:"actorId" validate:"required,uuid"`
	ActorRole    string           `json:"actorRole" validate:"required"`
	Observations string           `json:"observations"`
	Location     *LocationPayload `json:"location"`
}

// UpdateGuideState handles POST /api/v1/guides/:guideID/state.
func (s *Server) UpdateGuideState(ctx echo.Context) error {
	guideID, err := s.pathUUID(ctx, "guideID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req UpdateGuideStateRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	target, err := guide.ParseState(req.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	act, err := s.parseActor(req.ActorID, req.ActorRole)
	if err != nil {
		return s.respondError(ctx, err)
	}

	location, err := parseLocation(req.Location)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateGuideStateCommand(guideID, target, act, req.Observations, location)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.updateStateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	s.metrics.StateTransitions.WithLabelValues(target.String()).Inc()

	return ctx.NoContent(http.StatusNoContent)
}

// CancelGuideRequest is the payload for a coordinator-executed cancellation.
type CancelGuideRequest struct {
	Kind          string `json:"kind" validate:"required"`
	Reason        string `json:"reason" validate:"required"`
	CoordinatorID string `json:"coordinatorId" validate:"required,uuid"`
}

// CancelGuide handles POST /api/v1/guides/:guideID/cancel.
func (s *Server) CancelGuide(ctx echo.Context) error {
	guideID, err := s.pathUUID(ctx, "guideID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req CancelGuideRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	kind, err := guide.ParseCancellationKind(req.Kind)
	if err != nil {
		return s.respondError(ctx, err)
	}
	coordinatorID, err := kernel.UUIDFromString(req.CoordinatorID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCancelGuideCommand(guideID, kind, req.Reason, coordinatorID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.cancelGuideHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	s.metrics.Cancellations.WithLabelValues(kind.String()).Inc()

	return ctx.NoContent(http.StatusNoContent)
}

// RejectGuideRequest is the public payload for a customer rejection.
type RejectGuideRequest struct {
	Reason         string `json:"reason" validate:"required"`
	RequiresReturn *bool  `json:"requiresReturn"`
}

// RejectGuideResponse confirms a registered rejection.
type RejectGuideResponse struct {
	GuideNumber            string `json:"guideNumber"`
	Status                 string `json:"status"`
	Message                string `json:"message"`
	ReturnProcessInitiated bool   `json:"returnProcessInitiated"`
}

// RejectGuide handles POST /api/v1/tracking/:guideNumber/reject. This is the
// public path: no actor, identified by guide number only.
func (s *Server) RejectGuide(ctx echo.Context) error {
	number, err := kernel.GuideNumberFromString(ctx.Param("guideNumber"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req RejectGuideRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	requiresReturn := true
	if req.RequiresReturn != nil {
		requiresReturn = *req.RequiresReturn
	}

	cmd, err := commands.NewRejectGuideCommand(number, req.Reason, requiresReturn)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.rejectGuideHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	s.metrics.Cancellations.WithLabelValues(guide.CancellationByCustomer.String()).Inc()

	return ctx.JSON(http.StatusOK, RejectGuideResponse{
		GuideNumber:            result.GuideNumber,
		Status:                 result.NewStatus,
		Message:                result.Message,
		ReturnProcessInitiated: result.ReturnProcessInitiated,
	})
}

// ReportIncidentRequest is the payload for a courier incident report.
type ReportIncidentRequest struct {
	CourierID   string           `json:"courierId" validate:"required,uuid"`
	Type        string           `json:"type" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Location    *LocationPayload `json:"location"`
}

// ReportIncident handles POST /api/v1/guides/:guideID/incidents.
func (s *Server) ReportIncident(ctx echo.Context) error {
	guideID, err := s.pathUUID(ctx, "guideID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req ReportIncidentRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	location, err := parseLocation(req.Location)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewReportIncidentCommand(guideID, courierID, req.Type, req.Description, location)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.reportIncidentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ResolveIncidentRequest is the payload for closing an incident.
type ResolveIncidentRequest struct {
	ResolverID string `json:"resolverId" validate:"required,uuid"`
	Resolution string `json:"resolution" validate:"required"`
}

// ResolveIncident handles POST /api/v1/incidents/:incidentID/resolve.
func (s *Server) ResolveIncident(ctx echo.Context) error {
	incidentID, err := s.pathUUID(ctx, "incidentID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req ResolveIncidentRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	resolverID, err := kernel.UUIDFromString(req.ResolverID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewResolveIncidentCommand(incidentID, resolverID, req.Resolution)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.resolveIncidentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AttachEvidenceRequest is the payload for delivery evidence.
type AttachEvidenceRequest struct {
	CourierID string `json:"courierId" validate:"required,uuid"`
	Type      string `json:"type" validate:"required"`
	FileRef   string `json:"fileRef"`
	Notes     string `json:"notes"`
}

// AttachEvidence handles POST /api/v1/guides/:guideID/evidences.
func (s *Server) AttachEvidence(ctx echo.Context) error {
	guideID, err := s.pathUUID(ctx, "guideID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req AttachEvidenceRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	kind, err := guide.ParseEvidenceType(req.Type)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAttachEvidenceCommand(guideID, courierID, kind, req.FileRef, req.Notes)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.attachEvidenceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CalculateMonthlyDiscountRequest names the period to recalculate.
type CalculateMonthlyDiscountRequest struct {
	Year  int `json:"year" validate:"required"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

// CalculateMonthlyDiscount handles POST /api/v1/businesses/:businessID/discounts.
func (s *Server) CalculateMonthlyDiscount(ctx echo.Context) error {
	businessID, err := s.pathUUID(ctx, "businessID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req CalculateMonthlyDiscountRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCalculateMonthlyDiscountCommand(businessID, req.Year, time.Month(req.Month))
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.discountHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func (s *Server) parseActor(id, role string) (actor.Actor, error) {
	actorID, err := kernel.UUIDFromString(id)
	if err != nil {
		return actor.Actor{}, err
	}
	parsedRole, err := actor.ParseRole(role)
	if err != nil {
		return actor.Actor{}, err
	}
	return actor.NewActor(actorID, parsedRole)
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func parseLocation(payload *LocationPayload) (*kernel.GeoPoint, error) {
	if payload == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(payload.Latitude, payload.Longitude)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
