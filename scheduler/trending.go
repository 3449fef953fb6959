package scheduler

import (
	"context"
	"time"

	"github.com/rpupo63/chainblog-backend/services"
)

// NewTrendingSweep schedules the trending score recomputation of blog
func NewTrendingSweep(blog *services.Blog, expression string, opts ...Option) (*Scheduler, error) {
	job := func(ctx context.Context) error {
		_, err := blog.RefreshTrending(ctx, services.TriggerScheduler)
		return err
	}
	opts = append([]Option{WithJobTimeout(time.Minute)}, opts...)
	return New("trending-sweep", expression, job, opts...)
}
