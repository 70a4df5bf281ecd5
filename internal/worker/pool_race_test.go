package worker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cuecaptain/captain-api/internal/models"
)

// Exercises the pool under concurrent producers. Run with -race.
func TestPoolConcurrentEnqueue(t *testing.T) {
	ch := &MockClickHouseConn{}
	pg := &MockDBStore{}
	rdb := NewMockMatchStore()

	p := NewPool(PoolConfig{
		WorkerCount:   2,
		QueueSize:     1000,
		BatchSize:     10,
		FlushInterval: 10 * time.Millisecond,
		ClickHouse:    ch,
		Postgres:      pg,
		Redis:         rdb,
		Logger:        zap.NewNop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	wg := sync.WaitGroup{}
	producers := 10
	resultsPerProducer := 100

	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < resultsPerProducer; j++ {
				p.Enqueue(&models.GameResultEvent{
					MatchID:      fmt.Sprintf("match-%d", i),
					GameNumber:   j%5 + 1,
					PlayerID:     fmt.Sprintf("player-%d", i),
					OpponentID:   fmt.Sprintf("opponent-%d", i),
					PlayerWon:    j%2 == 0,
					PointsScored: 38,
					Timestamp:    float64(time.Now().Unix()),
				})
				if j%10 == 0 {
					time.Sleep(time.Millisecond)
				}
			}
		}(i)
	}

	wg.Wait()
	p.Stop()

	// Side effects run async after Send; allow them to drain
	time.Sleep(200 * time.Millisecond)

	want := producers * resultsPerProducer
	if got := ch.AppendedRows(); got != want {
		t.Errorf("appended rows = %d, want %d", got, want)
	}
}
