package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/forless-ai/forless-backend/internal/projects"
)

const purgeAfter = 30 * 24 * time.Hour

// Scheduler runs housekeeping jobs. Currently one: hard-deleting projects
// that have sat in the soft-deleted state long enough.
type Scheduler struct {
	projects *projects.Repo
	log      zerolog.Logger
	cron     *cron.Cron
}

func NewScheduler(projectsRepo *projects.Repo, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		projects: projectsRepo,
		log:      log.With().Str("component", "cron").Logger(),
	}
}

// Start initializes cron tasks. Runs nightly at 3:00 AM.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 3 * * *", s.purgeDeletedProjects)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create cron job")
		return
	}

	s.log.Info().Msg("cron scheduler started (purging deleted projects nightly at 3:00AM)")
	c.Start()
	s.cron = c
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) purgeDeletedProjects() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.projects.PurgeDeleted(ctx, purgeAfter)
	if err != nil {
		s.log.Error().Err(err).Msg("purge deleted projects failed")
		return
	}
	s.log.Info().Int64("purged", n).Msg("purged soft-deleted projects")
}
