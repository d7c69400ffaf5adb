// Package worker implements the buffered worker pool for async telemetry
// processing. It decouples HTTP request handling from analytics writes:
// events are batched into ClickHouse and fed to the achievement worker,
// with load shedding when the queue is full.
package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/retypegame/retype-api/internal/logic"
	"github.com/retypegame/retype-api/internal/models"
)

var (
	eventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "retype_events_ingested_total",
		Help: "Total number of telemetry events accepted",
	})

	eventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "retype_events_processed_total",
		Help: "Total number of telemetry events processed by workers",
	})

	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "retype_events_failed_total",
		Help: "Total number of telemetry events that failed processing",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "retype_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "retype_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	eventsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "retype_events_load_shed_total",
		Help: "Total number of telemetry events dropped due to load shedding",
	})
)

// Job is one queued telemetry event plus its serialized form and receipt time.
type Job struct {
	Event     *models.SessionEvent
	RawJSON   string
	Timestamp time.Time
}

// PoolConfig configures the worker pool. ClickHouse may be nil; the batch
// sink is then skipped and only the achievement side effects run.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Postgres      logic.PgPool
	Redis         *redis.Client
	Logger        *zap.Logger
}

// Pool manages the worker goroutines for async event processing.
type Pool struct {
	config            PoolConfig
	jobQueue          chan Job
	wg                sync.WaitGroup
	ctx               context.Context
	cancel            context.CancelFunc
	logger            *zap.SugaredLogger
	achievementWorker *AchievementWorker
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:            cfg,
		jobQueue:          make(chan Job, cfg.QueueSize),
		logger:            cfg.Logger.Sugar(),
		achievementWorker: NewAchievementWorker(cfg.Postgres, &RedisStatStore{client: cfg.Redis}, cfg.Logger.Sugar()),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop drains the queue, flushes remaining batches and waits for the workers.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds an event to the queue. Returns false when the event was shed
// because the queue is full or the pool is shutting down.
func (p *Pool) Enqueue(event *models.SessionEvent) bool {
	rawJSON, _ := json.Marshal(event)

	job := Job{
		Event:     event,
		RawJSON:   string(rawJSON),
		Timestamp: time.Now(),
	}

	// sends race with Stop closing the channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue event (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- job:
		eventsIngested.Inc()
		return true
	default:
		eventsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker accumulates jobs into a batch and flushes on size or interval.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			eventsFailed.Add(float64(len(batch)))
		} else {
			eventsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch writes the batch to ClickHouse and runs the achievement side
// effects. The analytics insert is skipped when the sink is disabled.
func (p *Pool) processBatch(batch []Job) error {
	ctx := context.Background()

	if p.config.ClickHouse != nil {
		if err := p.insertBatch(ctx, batch); err != nil {
			return err
		}
	}

	for _, job := range batch {
		p.achievementWorker.ProcessEvent(ctx, job.Event)
	}
	return nil
}

func (p *Pool) insertBatch(ctx context.Context, batch []Job) error {
	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO retype.session_events (
			timestamp, event_type, user_id, session_id, mode,
			wpm, accuracy, words_completed, time_elapsed, raw_json
		)
	`)
	if err != nil {
		return err
	}

	for _, job := range batch {
		event := job.Event
		ts := event.Timestamp
		if ts.IsZero() {
			ts = job.Timestamp
		}

		err := chBatch.Append(
			ts,
			string(event.Type),
			event.UserID,
			event.SessionID,
			event.Mode,
			uint16(event.WPM),
			event.Accuracy,
			uint32(event.WordsCompleted),
			uint32(event.TimeElapsed),
			job.RawJSON,
		)
		if err != nil {
			p.logger.Warnw("Failed to append event to batch", "error", err, "eventType", event.Type)
			continue
		}
	}

	return chBatch.Send()
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
