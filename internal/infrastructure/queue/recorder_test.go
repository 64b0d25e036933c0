package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/geotrace/geolocation-api/internal/core/domain"
	"github.com/geotrace/geolocation-api/internal/core/ports"
)

type captureHistoryService struct {
	added chan ports.AddHistoryInput
}

func (s *captureHistoryService) List(context.Context, string) ([]*domain.History, error) {
	return nil, nil
}

func (s *captureHistoryService) Add(_ context.Context, input ports.AddHistoryInput) (*domain.History, error) {
	s.added <- input
	return &domain.History{}, nil
}

func (s *captureHistoryService) Delete(context.Context, string, []string) (int64, error) {
	return 0, nil
}

func TestRecorder_EnqueueReachesService(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &captureHistoryService{added: make(chan ports.AddHistoryInput, 8)}
	r := NewRecorder(2, svc, zerolog.Nop())
	r.Start(ctx)

	if ok := r.Enqueue(ports.AddHistoryInput{UserID: "userA", IPAddress: "8.8.8.8"}); !ok {
		t.Fatalf("enqueue rejected with an empty queue")
	}

	select {
	case input := <-svc.added:
		if input.UserID != "userA" || input.IPAddress != "8.8.8.8" {
			t.Fatalf("unexpected input: %+v", input)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("record never processed")
	}
}

// Same user always lands on the same worker, so records keep their order.
func TestRecorder_ShardIsStable(t *testing.T) {
	r := NewRecorder(4, &captureHistoryService{added: make(chan ports.AddHistoryInput, 1)}, zerolog.Nop())

	first := r.shardIndex("userA")
	for i := 0; i < 16; i++ {
		if got := r.shardIndex("userA"); got != first {
			t.Fatalf("shard moved: %d then %d", first, got)
		}
	}
}

func TestRecorder_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	// Workers never started, so the buffer fills and stays full.
	r := NewRecorder(1, &captureHistoryService{added: make(chan ports.AddHistoryInput)}, zerolog.Nop())

	input := ports.AddHistoryInput{UserID: "userA", IPAddress: "8.8.8.8"}
	for i := 0; i < channelBuffer; i++ {
		if ok := r.Enqueue(input); !ok {
			t.Fatalf("enqueue %d rejected before the buffer filled", i)
		}
	}

	done := make(chan bool, 1)
	go func() { done <- r.Enqueue(input) }()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("enqueue accepted past capacity")
		}
	case <-time.After(time.Second):
		t.Fatalf("enqueue blocked on a full queue")
	}
}
