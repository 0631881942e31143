package cronjob

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/stafflow-io/staffing-backend/internal/staffing/cache"
	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/pkg/logger"
)

// Scheduler runs the nightly maintenance pass: it reports assignments whose
// end date has passed but are still marked active, and pre-warms the display
// name cache for the consultants referenced by active assignments.
type Scheduler struct {
	db    *pgxpool.Pool
	names *cache.NameCache
}

func NewScheduler(db *pgxpool.Pool, names *cache.NameCache) *Scheduler {
	return &Scheduler{db: db, names: names}
}

// Start initializes cron tasks.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// (12:00 AM)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.runNightlyJobs()
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create cron job")
		return
	}

	logger.Info().Msg("cron scheduler started (running nightly at 12:00AM)")
	c.Start()
}

func (s *Scheduler) runNightlyJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger.Info().Msg("nightly maintenance started")

	if err := s.reportExpiredAssignments(ctx); err != nil {
		logger.Error().Err(err).Msg("expired assignment report failed")
	}
	if err := s.warmNameCache(ctx); err != nil {
		logger.Error().Err(err).Msg("name cache warm failed")
	}

	logger.Info().Str("finished_at", time.Now().Format(time.RFC1123)).Msg("nightly maintenance completed")
}

// reportExpiredAssignments counts active assignments whose end date is in the
// past. They are left untouched: closing them out is an operator decision.
func (s *Scheduler) reportExpiredAssignments(ctx context.Context) error {
	var count int
	err := s.db.QueryRow(ctx, `
		select count(*) from consultant_assignments
		where status = $1 and end_date < current_date
	`, string(domain.StatusActive)).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn().Int("count", count).Msg("active assignments past their end date")
	} else {
		logger.Info().Msg("no active assignments past their end date")
	}
	return nil
}

func (s *Scheduler) warmNameCache(ctx context.Context) error {
	rows, err := s.db.Query(ctx, `
		select distinct consultant_id from consultant_assignments where status = $1
	`, string(domain.StatusActive))
	if err != nil {
		return err
	}
	defer rows.Close()

	warmed := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		if _, err := s.names.ConsultantName(ctx, id); err != nil {
			logger.Debug().Err(err).Str("consultant_id", id).Msg("cache warm skipped")
			continue
		}
		warmed++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	logger.Info().Int("warmed", warmed).Msg("consultant name cache warmed")
	return nil
}
