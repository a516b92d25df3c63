package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/tu-tien/internal/engine"
	"github.com/talgya/tu-tien/internal/game"
)

func TestLoopStopIsIdempotent(t *testing.T) {
	loop := engine.NewLoop(engine.New(game.NewState()))

	done := make(chan struct{})
	go func() {
		loop.Run(context.Background())
		close(done)
	}()

	assert.NotPanics(t, func() {
		loop.Stop()
		loop.Stop()
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoopPausedSpeedDoesNotAdvance(t *testing.T) {
	g := engine.New(game.NewState())
	st := g.State()

	loop := engine.NewLoop(g)
	loop.Interval = time.Millisecond
	loop.Speed = 0

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	loop.Run(ctx)

	assert.Zero(t, st.Qi)
}
