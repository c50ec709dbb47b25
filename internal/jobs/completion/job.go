// Package completion sweeps confirmed bookings whose time window has
// passed and marks them completed. The sweep runs on a cron schedule so
// bookings settle without any request traffic touching them.
package completion

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"quiethours/config"
	"quiethours/infras/otel"
	"quiethours/internal/domains/booking/repository"
	"quiethours/shared/constant"
	"quiethours/shared/timezone"
)

type Job struct {
	repo repository.Booking
	cfg  *config.Config
	otel otel.Otel
	cron *cron.Cron
}

func New(repo repository.Booking, cfg *config.Config, otel otel.Otel) *Job {
	return &Job{
		repo: repo,
		cfg:  cfg,
		otel: otel,
		cron: cron.New(),
	}
}

// Start registers the sweep on the configured schedule and runs it once
// immediately so a restart does not leave stale bookings waiting a full
// interval.
func (j *Job) Start() error {
	schedule := j.cfg.Booking.CompletionSchedule
	if schedule == "" {
		schedule = "@every 5m"
	}

	if _, err := j.cron.AddFunc(schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()

	go j.run()

	log.Info().Str("schedule", schedule).Msg("Booking completion job started")

	return nil
}

func (j *Job) Stop() {
	<-j.cron.Stop().Done()

	log.Info().Msg("Booking completion job stopped")
}

func (j *Job) run() {
	ctx, scope := j.otel.NewScope(context.Background(), constant.OtelJobScopeName, constant.OtelJobScopeName+".booking.completion")
	defer scope.End()

	completed, err := j.repo.CompleteExpired(ctx, timezone.Now())
	if err != nil {
		scope.TraceIfError(err)
		log.Error().Err(err).Msg("failed to complete expired bookings")

		return
	}

	if completed > 0 {
		log.Info().Int64("completed", completed).Msg("Expired bookings marked completed")
	}
}
