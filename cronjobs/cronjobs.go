package cronjobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitCronJobs schedules one job per configured sheet and starts the scheduler.
func InitCronJobs(r *Runner, logger *zap.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cronLogger := zapCronLogger{logger.Sugar()}
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	for _, city := range r.Cities() {
		cfg := r.sheets[city]
		_, err := c.AddFunc(cfg.Schedule, func() {
			logger.Info("CronJob: sheet ingestion running", zap.String("city", city))

			report, err := r.RunCity(context.Background(), city)
			if err != nil {
				logger.Error("Scheduled ingestion failed", zap.String("city", city), zap.Error(err))
				return
			}
			logger.Info("CronJob: sheet ingestion done",
				zap.String("city", city),
				zap.Int("created", report.Created),
				zap.Int("updated", report.Updated),
			)
		})
		if err != nil {
			return nil, fmt.Errorf("error scheduling %s (%q): %w", city, cfg.Schedule, err)
		}
	}

	c.Start()
	return c, nil
}

// zapCronLogger routes cron's own logging through zap.
type zapCronLogger struct {
	s *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
