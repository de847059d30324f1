package projects_background

import (
	"context"
	"log/slog"
	"time"

	projects_enums "projecttrack/internal/features/projects/enums"
	projects_interfaces "projecttrack/internal/features/projects/interfaces"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"
)

const (
	sweepSchedule        = "@every 10m"
	sweepTimeout         = 2 * time.Minute
	sweepChecksPerSecond = 50
)

// ConsistencyService periodically verifies that every project's current
// status agrees with the newest entry of its history. Divergence is only
// reported, never repaired: the history is the source of truth for auditors
// and a silent fix would hide the bug that caused the drift.
type ConsistencyService struct {
	projectStore projects_interfaces.ProjectStore
	historyStore projects_interfaces.StatusHistoryStore
	logger       *slog.Logger
	scheduler    *cron.Cron
	pacer        *rate.Limiter
}

func NewConsistencyService(
	projectStore projects_interfaces.ProjectStore,
	historyStore projects_interfaces.StatusHistoryStore,
	logger *slog.Logger,
) *ConsistencyService {
	return &ConsistencyService{
		projectStore: projectStore,
		historyStore: historyStore,
		logger:       logger,
		pacer:        rate.NewLimiter(rate.Limit(sweepChecksPerSecond), 1),
	}
}

func (s *ConsistencyService) Start() {
	s.scheduler = cron.New()

	_, err := s.scheduler.AddFunc(sweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		if _, _, err := s.RunSweep(ctx); err != nil {
			s.logger.Error("consistency sweep failed", "error", err)
		}
	})
	if err != nil {
		s.logger.Error("failed to schedule consistency sweep", "error", err)
		return
	}

	s.scheduler.Start()
}

func (s *ConsistencyService) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// RunSweep checks every project once and returns how many were checked and
// how many had diverged. History reads are paced so a large sweep does not
// crowd out foreground queries.
func (s *ConsistencyService) RunSweep(ctx context.Context) (checked int, diverged int, err error) {
	projects, err := s.projectStore.GetAllProjects(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, project := range projects {
		if err := s.pacer.Wait(ctx); err != nil {
			return checked, diverged, err
		}

		newest, err := s.historyStore.GetNewestEntry(project.ID)
		if err != nil {
			s.logger.Warn("consistency sweep could not read history",
				"projectId", project.ID,
				"error", err,
			)
			continue
		}
		checked++

		if newest == nil {
			// A project with no history yet is consistent only while it
			// still shows its creation status.
			if project.CurrentStatus != projects_enums.ProjectStatusFormulation {
				diverged++
				s.logger.Error("project status diverged: no history but status moved",
					"projectId", project.ID,
					"currentStatus", project.CurrentStatus,
				)
			}
			continue
		}

		if newest.Status != project.CurrentStatus {
			diverged++
			s.logger.Error("project status diverged from newest history entry",
				"projectId", project.ID,
				"currentStatus", project.CurrentStatus,
				"newestEntryStatus", newest.Status,
			)
		}
	}

	s.logger.Info("consistency sweep finished", "checked", checked, "diverged", diverged)

	return checked, diverged, nil
}
