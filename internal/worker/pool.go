// Package worker implements the buffered worker pool pattern for async
// game-result processing. This decouples HTTP request handling from database
// writes, providing:
// - Backpressure handling via load shedding
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees

package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cuecaptain/captain-api/internal/models"
)

// Prometheus metrics
var (
	resultsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "captain_results_ingested_total",
		Help: "Total number of game results ingested",
	})

	resultsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "captain_results_processed_total",
		Help: "Total number of game results processed by workers",
	})

	resultsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "captain_results_failed_total",
		Help: "Total number of game results that failed processing",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "captain_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "captain_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	resultsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "captain_results_load_shed_total",
		Help: "Total number of game results dropped due to load shedding",
	})
)

// Job represents a unit of work for the worker pool
type Job struct {
	Event     *models.GameResultEvent
	RawJSON   string
	Timestamp time.Time
}

// DBStore is the narrow Postgres surface the pool needs.
type DBStore interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// MatchStore is the narrow Redis surface used for live-match snapshots.
type MatchStore interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Postgres      DBStore
	Redis         MatchStore
	Logger        *zap.Logger
}

// Pool manages a pool of workers for async game-result processing
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 5000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	// Start queue depth reporter
	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds a job to the queue. Blocks if queue is full (no load shedding).
func (p *Pool) Enqueue(event *models.GameResultEvent) bool {
	rawJSON, _ := json.Marshal(event)

	job := Job{
		Event:     event,
		RawJSON:   string(rawJSON),
		Timestamp: time.Now(),
	}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue result (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- job:
		resultsIngested.Inc()
		return true
	case <-p.ctx.Done():
		p.logger.Warn("Worker pool context canceled, dropping result")
		resultsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes jobs from the queue in batches
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
			resultsFailed.Add(float64(len(batch)))
		} else {
			resultsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				// Channel closed, flush remaining
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

// processBatch inserts a batch of game results into ClickHouse, then applies
// side effects (head-to-head records, live-match snapshots).
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	ctx := context.Background()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO league_stats.game_results (
			timestamp, match_id, game_number, session,
			player_id, opponent_id, skill_level, player_won,
			points_scored, points_needed, break_and_run, nine_on_snap, raw_json
		)
	`)
	if err != nil {
		return err
	}

	for _, job := range batch {
		event := job.Event

		err := chBatch.Append(
			eventTime(event, job.Timestamp),
			normalizeMatchID(event.MatchID),
			uint8(event.GameNumber),
			event.Session,
			event.PlayerID,
			event.OpponentID,
			uint8(event.SkillLevel),
			boolToUint8(event.PlayerWon),
			uint16(event.PointsScored),
			uint16(event.PointsNeeded),
			boolToUint8(event.BreakAndRun),
			boolToUint8(event.NineOnSnap),
			job.RawJSON,
		)
		if err != nil {
			p.logger.Warnw("Failed to append result to batch", "error", err, "match_id", event.MatchID)
			continue
		}
	}

	// Side effects run async; the slice is reused by the worker loop
	batchCopy := make([]Job, len(batch))
	copy(batchCopy, batch)
	go p.processBatchSideEffects(ctx, batchCopy)

	return chBatch.Send()
}

// processBatchSideEffects updates head-to-head records one game at a time and
// refreshes live-match snapshots in Redis.
func (p *Pool) processBatchSideEffects(ctx context.Context, batch []Job) {
	for _, job := range batch {
		event := job.Event

		p.recordHeadToHead(ctx, event, job.Timestamp)
		p.updateLiveMatch(ctx, event)
	}
}

// recordHeadToHead folds one game into the directional pairing record. Running
// averages are updated in SQL so concurrent workers cannot lose updates.
func (p *Pool) recordHeadToHead(ctx context.Context, event *models.GameResultEvent, receivedAt time.Time) {
	won := 0
	if event.PlayerWon {
		won = 1
	}

	_, err := p.config.Postgres.Exec(ctx, `
		INSERT INTO head_to_head (
			player_id, opponent_id, total_games, wins, losses,
			avg_points_scored, avg_points_needed, last_played
		)
		VALUES ($1, $2, 1, $3, 1 - $3, $4, $5, $6)
		ON CONFLICT (player_id, opponent_id) DO UPDATE SET
			total_games = head_to_head.total_games + 1,
			wins = head_to_head.wins + EXCLUDED.wins,
			losses = head_to_head.losses + EXCLUDED.losses,
			avg_points_scored = (head_to_head.avg_points_scored * head_to_head.total_games + EXCLUDED.avg_points_scored) / (head_to_head.total_games + 1),
			avg_points_needed = (head_to_head.avg_points_needed * head_to_head.total_games + EXCLUDED.avg_points_needed) / (head_to_head.total_games + 1),
			last_played = EXCLUDED.last_played
	`, event.PlayerID, event.OpponentID, won,
		float64(event.PointsScored), float64(event.PointsNeeded), eventTime(event, receivedAt))

	if err != nil {
		p.logger.Warnw("Failed to record head-to-head game",
			"player", event.PlayerID, "opponent", event.OpponentID, "error", err)
	}
}

// updateLiveMatch writes the game outcome into the match snapshot and bumps
// the team score.
func (p *Pool) updateLiveMatch(ctx context.Context, event *models.GameResultEvent) {
	raw, err := p.config.Redis.HGet(ctx, "live_matches", event.MatchID).Result()
	if err != nil {
		// No live snapshot: match not tracked live, nothing to update
		return
	}

	var match models.LiveMatch
	if err := json.Unmarshal([]byte(raw), &match); err != nil {
		p.logger.Warnw("Corrupt live match snapshot", "match_id", event.MatchID, "error", err)
		return
	}

	if event.GameNumber < 1 || event.GameNumber > models.MatchGameCount {
		return
	}
	slot := &match.Games[event.GameNumber-1]
	if slot.Result.Decided() {
		// Already scored; scorekeeper retransmits are idempotent
		return
	}

	// Unassigned slot: the reporting player is ours by convention, since the
	// snapshot lives on our team's scorekeeper.
	if slot.OurPlayerID == "" && slot.TheirPlayerID == "" {
		slot.OurPlayerID = event.PlayerID
		slot.TheirPlayerID = event.OpponentID
	}

	// The snapshot is stored from our team's perspective. Results arrive from
	// the scoring player's perspective, so flip when their player reported.
	ourPlayerWon := event.PlayerWon
	if slot.TheirPlayerID == event.PlayerID {
		ourPlayerWon = !event.PlayerWon
	}

	if ourPlayerWon {
		slot.Result = models.GameWon
		match.OurScore++
	} else {
		slot.Result = models.GameLost
		match.TheirScore++
	}
	match.UpdatedAt = time.Now().UTC()

	data, _ := json.Marshal(match)
	if err := p.config.Redis.HSet(ctx, "live_matches", event.MatchID, data).Err(); err != nil {
		p.logger.Warnw("Failed to update live match", "match_id", event.MatchID, "error", err)
	}
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

// Helper functions

// minValidUnixTimestamp is 2020-01-01 00:00:00 UTC in seconds. Tablet clients
// sometimes send seconds-since-app-launch instead of a real epoch; anything
// below this gets the ingestion wall-clock time instead.
const minValidUnixTimestamp = 1577836800

func eventTime(event *models.GameResultEvent, receivedAt time.Time) time.Time {
	if event.Timestamp >= minValidUnixTimestamp {
		sec := int64(event.Timestamp)
		nsec := int64((event.Timestamp - float64(sec)) * 1e9)
		return time.Unix(sec, nsec)
	}
	return receivedAt
}

// normalizeMatchID parses match_id as UUID or derives a consistent one from
// the string, so league software that sends plain identifiers still dedups.
func normalizeMatchID(s string) uuid.UUID {
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(s))
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
