package notify

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/danyol08/PMS-Monitoring/internal/config"
	"github.com/danyol08/PMS-Monitoring/internal/model"
	"github.com/danyol08/PMS-Monitoring/internal/repository"
	"github.com/danyol08/PMS-Monitoring/internal/schedule"
	"github.com/danyol08/PMS-Monitoring/internal/service"
)

// Scheduler runs the background maintenance jobs: a daily check that
// raises notifications for contracts due soon, and a weekly summary of
// completed sessions.
type Scheduler struct {
	maintenance   *service.MaintenanceService
	notifications *repository.NotificationRepository
	history       *repository.HistoryRepository
	clock         schedule.Clock
	cfg           *config.Config
	log           zerolog.Logger
	cron          *cron.Cron
}

func NewScheduler(
	maintenance *service.MaintenanceService,
	notifications *repository.NotificationRepository,
	history *repository.HistoryRepository,
	clock schedule.Clock,
	cfg *config.Config,
	log zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		maintenance:   maintenance,
		notifications: notifications,
		history:       history,
		clock:         clock,
		cfg:           cfg,
		log:           log,
		cron:          cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Maintenance.DailyCheckSpec, func() {
		if err := s.RunDailyCheck(context.Background()); err != nil {
			s.log.Error().Err(err).Msg("daily maintenance check failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule daily check: %w", err)
	}

	if _, err := s.cron.AddFunc(s.cfg.Maintenance.WeeklyReportSpec, func() {
		if err := s.RunWeeklyReport(context.Background()); err != nil {
			s.log.Error().Err(err).Msg("weekly report failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule weekly report: %w", err)
	}

	s.cron.Start()
	s.log.Info().
		Str("daily_spec", s.cfg.Maintenance.DailyCheckSpec).
		Str("weekly_spec", s.cfg.Maintenance.WeeklyReportSpec).
		Msg("maintenance scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("maintenance scheduler stopped")
}

// RunDailyCheck raises one reminder per contract due within the notify
// window. A contract already notified within the window is skipped.
func (s *Scheduler) RunDailyCheck(ctx context.Context) error {
	window := s.cfg.Maintenance.NotifyWindowDays
	due, err := s.maintenance.UpcomingMaintenance(ctx, window)
	if err != nil {
		return err
	}

	dedupeSince := s.clock.Today().AddDate(0, 0, -window)
	notified := 0
	for _, item := range due {
		exists, err := s.notifications.HasRecent(ctx, item.ID, "maintenance_reminder", dedupeSince)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		contractID := item.ID
		notification := &model.Notification{
			Title: fmt.Sprintf("Upcoming Maintenance - %s", item.SQ),
			Message: fmt.Sprintf("Maintenance is due for %s contract %s on %s",
				item.ContractType, item.SQ, item.NextPMSSchedule.Format("2006-01-02")),
			NotificationType: "maintenance_reminder",
			ContractID:       &contractID,
		}
		if item.IsOverdue {
			notification.Title = fmt.Sprintf("Overdue Maintenance - %s", item.SQ)
		}
		if err := s.notifications.Append(ctx, notification); err != nil {
			return err
		}
		notified++
	}

	s.log.Info().
		Int("due", len(due)).
		Int("notified", notified).
		Msg("daily maintenance check completed")
	return nil
}

// RunWeeklyReport posts a summary of sessions completed in the last
// seven days.
func (s *Scheduler) RunWeeklyReport(ctx context.Context) error {
	weekAgo := s.clock.Today().AddDate(0, 0, -7)
	completed, err := s.history.CountSince(ctx, weekAgo)
	if err != nil {
		return err
	}

	notification := &model.Notification{
		Title:            "Weekly Maintenance Report",
		Message:          fmt.Sprintf("Weekly report: %d maintenance tasks completed this week", completed),
		NotificationType: "weekly_report",
	}
	if err := s.notifications.Append(ctx, notification); err != nil {
		return err
	}

	s.log.Info().Int64("completed", completed).Msg("weekly report generated")
	return nil
}
