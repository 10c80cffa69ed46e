package jobs

import (
	"context"
	"fmt"
	"time"

	"frontend/internal/storage"
	"frontend/internal/utils"

	"github.com/robfig/cron/v3"
)

// DefaultJanitorSpec runs the purge every five minutes.
const DefaultJanitorSpec = "@every 5m"

// Sweep purges expired client storage once and returns how many entries went.
func Sweep(ctx context.Context, purgers ...storage.Purger) int64 {
	var total int64
	for i, p := range purgers {
		if p == nil {
			continue
		}
		n, err := p.PurgeExpired(ctx)
		if err != nil {
			utils.LogEvent("", "janitor", "purge", fmt.Sprintf("purger=%d error=%v", i, err))
			continue
		}
		total += n
	}
	if total > 0 {
		utils.LogEvent("", "janitor", "purge", fmt.Sprintf("removed=%d", total))
	}
	return total
}

// StartJanitor schedules Sweep on the cron spec. Stop the returned cron on
// shutdown.
func StartJanitor(spec string, purgers ...storage.Purger) (*cron.Cron, error) {
	if spec == "" {
		spec = DefaultJanitorSpec
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		Sweep(ctx, purgers...)
	})
	if err != nil {
		return nil, fmt.Errorf("janitor schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
