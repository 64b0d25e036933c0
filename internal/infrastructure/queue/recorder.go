package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/geotrace/geolocation-api/internal/api/metrics"
	"github.com/geotrace/geolocation-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recorder persists history records off the request path. Records are routed
// to a fixed set of workers by hashing the owning user id, so one user's
// searches are written in the order they happened.
type Recorder struct {
	workers []chan ports.AddHistoryInput
	service ports.HistoryService
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, service ports.HistoryService, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan ports.AddHistoryInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan ports.AddHistoryInput, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its user. Returns
// false when that worker's buffer is full; the record is dropped rather than
// blocking the request that produced it.
func (r *Recorder) Enqueue(input ports.AddHistoryInput) bool {
	idx := r.shardIndex(input.UserID)
	select {
	case r.workers[idx] <- input:
		metrics.RecorderQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(r.workers[idx])))
		return true
	default:
		r.log.Warn().Str("user_id", input.UserID).Int("worker_id", idx).Msg("recorder queue full, dropping history record")
		return false
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (r *Recorder) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan ports.AddHistoryInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			metrics.RecorderQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if _, err := r.service.Add(ctx, input); err != nil {
				r.log.Error().Err(err).
					Str("user_id", input.UserID).
					Int("worker_id", id).
					Msg("history record failed")
			}
		}
	}
}
