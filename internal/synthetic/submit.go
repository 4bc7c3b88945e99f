package synthetic

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/pkg/logger"
)

// Stats reports a replay.
type Stats struct {
	Sessions        int           `json:"sessions"`
	SummariesOK     int           `json:"summaries_ok"`
	SummariesFailed int           `json:"summaries_failed"`
	Duration        time.Duration `json:"duration_ns"`
}

type summaryRequest struct {
	Sets      []model.LoggedSet `json:"sets"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at"`
}

type dashboardRequest struct {
	Sets          []model.LoggedSet `json:"sets"`
	AsOf          time.Time         `json:"as_of"`
	SessionStarts []time.Time       `json:"session_starts,omitempty"`
}

// Submit replays h against the server: each session is summarized through
// /v1/summary by a pool of workers, then the whole history is sent to
// /v1/dashboard as of asOf. The dashboard body is returned undecoded.
func Submit(ctx context.Context, c *Client, h History, asOf time.Time, workers int) (Stats, json.RawMessage, error) {
	start := time.Now()
	if err := c.Health(ctx); err != nil {
		return Stats{}, nil, fmt.Errorf("service health check failed: %w", err)
	}
	if workers <= 0 {
		workers = 1
	}

	sessions := h.Sessions()
	var ok, failed int64

	jobs := make(chan []model.LoggedSet, workers*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sets := range jobs {
				req := summaryRequest{
					Sets:      sets,
					StartedAt: sets[0].Timestamp,
					EndedAt:   sets[len(sets)-1].Timestamp,
				}
				if err := c.Post(ctx, "/v1/summary", req, nil); err != nil {
					atomic.AddInt64(&failed, 1)
					logger.Get().Debug(ctx, "summary failed", logger.Error(err))
					continue
				}
				atomic.AddInt64(&ok, 1)
			}
		}()
	}

feed:
	for _, s := range sessions {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- s:
		}
	}
	close(jobs)
	wg.Wait()

	stats := Stats{
		Sessions:        len(sessions),
		SummariesOK:     int(atomic.LoadInt64(&ok)),
		SummariesFailed: int(atomic.LoadInt64(&failed)),
	}
	if err := ctx.Err(); err != nil {
		stats.Duration = time.Since(start)
		return stats, nil, fmt.Errorf("submission cancelled: %w", err)
	}

	var dashboard json.RawMessage
	err := c.Post(ctx, "/v1/dashboard", dashboardRequest{
		Sets:          h.Sets,
		AsOf:          asOf,
		SessionStarts: h.SessionStarts,
	}, &dashboard)
	stats.Duration = time.Since(start)
	if err != nil {
		return stats, nil, err
	}

	logger.Get().Info(ctx, "replay completed",
		logger.Int("sessions", stats.Sessions),
		logger.Int("summaries_ok", stats.SummariesOK),
		logger.Int("summaries_failed", stats.SummariesFailed),
		logger.Duration("duration", stats.Duration),
	)
	return stats, dashboard, nil
}
