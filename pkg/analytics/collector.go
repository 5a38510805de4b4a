package analytics

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/coachdesk/coachdesk/pkg/observability"
	"github.com/coachdesk/coachdesk/pkg/store"
)

// Collector periodically refreshes the business gauges from store counts.
type Collector struct {
	store   *store.Store
	metrics *observability.Metrics
	logger  *observability.Logger
	cron    *cron.Cron
}

// NewCollector creates a collector over the given store and metrics.
func NewCollector(st *store.Store, metrics *observability.Metrics, logger *observability.Logger) *Collector {
	return &Collector{
		store:   st,
		metrics: metrics,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start refreshes the gauges once and schedules recurring refreshes.
// Schedule accepts cron expressions, including @every forms.
func (c *Collector) Start(schedule string) error {
	c.Refresh()
	if _, err := c.cron.AddFunc(schedule, c.Refresh); err != nil {
		return fmt.Errorf("invalid stats refresh schedule %q: %w", schedule, err)
	}
	c.cron.Start()
	c.logger.WithField("schedule", schedule).Info("stats collector started")
	return nil
}

// Stop halts the recurring refresh.
func (c *Collector) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
	c.logger.Info("stats collector stopped")
}

// Refresh updates all business gauges from the current store contents.
func (c *Collector) Refresh() {
	users, modules, programs, sessions := c.store.Counts()
	c.metrics.UsersTotal.Set(float64(users))
	c.metrics.ModulesTotal.Set(float64(modules))
	c.metrics.ProgramsTotal.Set(float64(programs))
	c.metrics.SessionsTotal.Set(float64(sessions))
	c.metrics.UpcomingSessions.Set(float64(len(c.store.ListSessions(store.SessionFilter{Upcoming: true}))))
}
