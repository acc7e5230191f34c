package cmd

import (
	"context"

	"gorm.io/gorm"

	httpin "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/notify"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/ports"
	"tracking/internal/jobs"
	"tracking/internal/pkg/logger"
	"tracking/internal/pkg/metrics"
)

// CompositionRoot wires every adapter and use case of the service.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   *notify.Dispatcher
	metrics    *metrics.Metrics
	log        logger.Logger
}

// NewCompositionRoot builds the object graph. The notification channel is
// Gmail when OAuth credentials are configured, log-only otherwise.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, log logger.Logger) (*CompositionRoot, error) {
	m := metrics.NewMetrics(config.MetricsNamespace)

	var service ports.NotificationService
	if config.GmailClientID != "" && config.GmailClientSecret != "" && config.GmailRefreshToken != "" {
		gmailService, err := notify.NewGmailNotificationService(ctx, notify.GmailConfig{
			ClientID:     config.GmailClientID,
			ClientSecret: config.GmailClientSecret,
			RefreshToken: config.GmailRefreshToken,
			Sender:       config.GmailSender,
		})
		if err != nil {
			return nil, err
		}
		service = gmailService
		log.Info("notifications configured", "channel", "gmail", "sender", config.GmailSender)
	} else {
		service = notify.NewLogNotificationService(log)
		log.Info("notifications configured", "channel", "log")
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notify.NewDispatcher(service, log, m),
		metrics:    m,
		log:        log,
	}, nil
}

// Metrics exposes the prometheus instruments for the HTTP layer.
func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreateCreateGuideCommandHandler() commands.CreateGuideCommandHandler {
	var f commands.GuideBusinessUoWFactory = FuncGuideBusinessUoWFactory(func() commands.GuideBusinessUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateGuideCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.guideUoWFactory())
}

func (c *CompositionRoot) CreateDeclineAssignmentCommandHandler() commands.DeclineAssignmentCommandHandler {
	return commands.NewDeclineAssignmentCommandHandler(c.guideUoWFactory())
}

func (c *CompositionRoot) CreateReassignCourierCommandHandler() commands.ReassignCourierCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignCourierCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateUpdateGuideStateCommandHandler() commands.UpdateGuideStateCommandHandler {
	var f commands.GuideBusinessUoWFactory = FuncGuideBusinessUoWFactory(func() commands.GuideBusinessUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateGuideStateCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCancelGuideCommandHandler() commands.CancelGuideCommandHandler {
	var f commands.CancellationUoWFactory = FuncCancellationUoWFactory(func() commands.CancellationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelGuideCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRejectGuideCommandHandler() commands.RejectGuideCommandHandler {
	var f commands.RejectionUoWFactory = FuncRejectionUoWFactory(func() commands.RejectionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectGuideCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateReportIncidentCommandHandler() commands.ReportIncidentCommandHandler {
	return commands.NewReportIncidentCommandHandler(c.guideUoWFactory())
}

func (c *CompositionRoot) CreateResolveIncidentCommandHandler() commands.ResolveIncidentCommandHandler {
	return commands.NewResolveIncidentCommandHandler(c.guideUoWFactory())
}

func (c *CompositionRoot) CreateAttachEvidenceCommandHandler() commands.AttachEvidenceCommandHandler {
	return commands.NewAttachEvidenceCommandHandler(c.guideUoWFactory())
}

func (c *CompositionRoot) CreateCalculateMonthlyDiscountCommandHandler() commands.CalculateMonthlyDiscountCommandHandler {
	var f commands.DiscountUoWFactory = FuncDiscountUoWFactory(func() commands.DiscountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCalculateMonthlyDiscountCommandHandler(f)
}

func (c *CompositionRoot) CreateTrackGuideQueryHandler() queries.TrackGuideQueryHandler {
	return queries.NewTrackGuideQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingGuidesQueryHandler() queries.GetPendingGuidesQueryHandler {
	return queries.NewGetPendingGuidesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierActiveGuidesQueryHandler() queries.GetCourierActiveGuidesQueryHandler {
	return queries.NewGetCourierActiveGuidesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCommissionHistoryQueryHandler() queries.GetCommissionHistoryQueryHandler {
	return queries.NewGetCommissionHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTotalCommissionsQueryHandler() queries.GetTotalCommissionsQueryHandler {
	return queries.NewGetTotalCommissionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMonthlyCommissionsQueryHandler() queries.GetMonthlyCommissionsQueryHandler {
	return queries.NewGetMonthlyCommissionsQueryHandler(c.gormDB)
}

// CreateHandlers bundles every use case handler for the HTTP server.
func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateGuide:      c.CreateCreateGuideCommandHandler(),
		AssignCourier:    c.CreateAssignCourierCommandHandler(),
		AcceptAssignment: c.CreateAcceptAssignmentCommandHandler(),
		Decline:          c.CreateDeclineAssignmentCommandHandler(),
		Reassign:         c.CreateReassignCourierCommandHandler(),
		UpdateState:      c.CreateUpdateGuideStateCommandHandler(),
		CancelGuide:      c.CreateCancelGuideCommandHandler(),
		RejectGuide:      c.CreateRejectGuideCommandHandler(),
		ReportIncident:   c.CreateReportIncidentCommandHandler(),
		ResolveIncident:  c.CreateResolveIncidentCommandHandler(),
		AttachEvidence:   c.CreateAttachEvidenceCommandHandler(),
		Discount:         c.CreateCalculateMonthlyDiscountCommandHandler(),

		TrackGuide:         c.CreateTrackGuideQueryHandler(),
		PendingGuides:      c.CreateGetPendingGuidesQueryHandler(),
		ActiveGuides:       c.CreateGetCourierActiveGuidesQueryHandler(),
		CommissionHistory:  c.CreateGetCommissionHistoryQueryHandler(),
		TotalCommissions:   c.CreateGetTotalCommissionsQueryHandler(),
		MonthlyCommissions: c.CreateGetMonthlyCommissionsQueryHandler(),
	}
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	handler := c.CreateCalculateMonthlyDiscountCommandHandler()
	businesses := c.uowFactory.Create().BusinessRepository()
	return jobs.NewJobManager(handler, businesses, config.DiscountCronSpec, c.log)
}

func (c *CompositionRoot) guideUoWFactory() commands.GuideUoWFactory {
	return FuncGuideUoWFactory(func() commands.GuideUoW {
		return c.uowFactory.Create()
	})
}

type FuncGuideUoWFactory func() commands.GuideUoW

func (f FuncGuideUoWFactory) Create() commands.GuideUoW {
	return f()
}

type FuncGuideBusinessUoWFactory func() commands.GuideBusinessUoW

func (f FuncGuideBusinessUoWFactory) Create() commands.GuideBusinessUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncCancellationUoWFactory func() commands.CancellationUoW

func (f FuncCancellationUoWFactory) Create() commands.CancellationUoW {
	return f()
}

type FuncRejectionUoWFactory func() commands.RejectionUoW

func (f FuncRejectionUoWFactory) Create() commands.RejectionUoW {
	return f()
}

type FuncDiscountUoWFactory func() commands.DiscountUoW

func (f FuncDiscountUoWFactory) Create() commands.DiscountUoW {
	return f()
}
