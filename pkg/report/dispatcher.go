package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/platinummonkey/quill/pkg/auth"
	"github.com/platinummonkey/quill/pkg/observability"
	"github.com/platinummonkey/quill/pkg/posts"
)

// Source re-fetches the user and post when a job runs
type Source interface {
	GetPost(ctx context.Context, id int64) (*posts.Post, error)
	GetUser(ctx context.Context, id int64) (*auth.User, error)
}

// job carries ids only; payloads are loaded inside the worker
type job struct {
	userID int64
	postID int64
}

// Dispatcher runs report generation on a fixed worker pool with a bounded
// queue.
type Dispatcher struct {
	source  Source
	mailer  Mailer
	metrics *observability.Metrics
	logger  *observability.Logger

	workers    int
	jobTimeout time.Duration
	jobs       chan job
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// NewDispatcher creates a dispatcher with the given worker count and queue
// capacity. metrics may be nil in tests.
func NewDispatcher(source Source, mailer Mailer, workers, queueSize int, metrics *observability.Metrics, logger *observability.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		source:     source,
		mailer:     mailer,
		metrics:    metrics,
		logger:     logger,
		workers:    workers,
		jobTimeout: 30 * time.Second,
		jobs:       make(chan job, queueSize),
	}
}

// Start launches the worker pool
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
}

// Stop closes the queue and waits for outstanding jobs to drain
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}

// Schedule enqueues report generation for a post on behalf of a user.
// Returns an error when the queue is full rather than blocking the request.
func (d *Dispatcher) Schedule(userID, postID int64) error {
	select {
	case d.jobs <- job{userID: userID, postID: postID}:
		if d.metrics != nil {
			d.metrics.ReportJobsQueued.Inc()
		}
		return nil
	default:
		return fmt.Errorf("report queue is full")
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	defer observability.RecoverPanic(d.logger, "report worker")

	for j := range d.jobs {
		d.process(j)
	}
}

func (d *Dispatcher) process(j job) {
	start := time.Now()
	if d.metrics != nil {
		d.metrics.ReportJobsQueued.Dec()
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.jobTimeout)
	defer cancel()

	err := d.generateAndDeliver(ctx, j)

	status := "success"
	if err != nil {
		status = "error"
		d.logger.WithError(err).
			WithField("post_id", j.postID).
			WithField("user_id", j.userID).
			Error("report job failed")
	}
	if d.metrics != nil {
		d.metrics.ReportJobsTotal.WithLabelValues(status).Inc()
		d.metrics.ReportJobDuration.Observe(time.Since(start).Seconds())
	}
}

func (d *Dispatcher) generateAndDeliver(ctx context.Context, j job) error {
	user, err := d.source.GetUser(ctx, j.userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	post, err := d.source.GetPost(ctx, j.postID)
	if err != nil {
		return fmt.Errorf("failed to load post: %w", err)
	}

	rep := Generate(post)
	if err := d.mailer.SendPostReport(ctx, user, post, rep); err != nil {
		return fmt.Errorf("failed to deliver report: %w", err)
	}
	return nil
}
