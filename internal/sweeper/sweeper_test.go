package sweeper_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/verimail/verimail/internal/sweeper"
)

type fakeSweeping struct {
	sweep func(ctx context.Context) (int, error)
}

func (f *fakeSweeping) Sweep(ctx context.Context) (int, error) { return f.sweep(ctx) }

func TestNew_RejectsInvalidCronExpression(t *testing.T) {
	_, err := sweeper.New(&fakeSweeping{}, "not a cron expr", slog.Default())
	if err == nil {
		t.Fatal("want error for invalid cron expression")
	}
}

func TestNew_AcceptsStandardExpression(t *testing.T) {
	s, err := sweeper.New(&fakeSweeping{}, "*/15 * * * *", slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s == nil {
		t.Fatal("want sweeper instance")
	}
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	s, err := sweeper.New(&fakeSweeping{
		sweep: func(_ context.Context) (int, error) { return 0, errors.New("must not run") },
	}, "0 0 1 1 *", slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	<-done
}
