package suite

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
	}
}

// Seeded - deterministic random source for tests that only need repeatability.
func (that *Suite) Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint: gosec // tests
}

// MockRandom is a scripted random source: every IntN call must be expected.
type MockRandom struct {
	mock.Mock
}

func NewMockRandom(t *testing.T) *MockRandom {
	t.Helper()

	m := &MockRandom{}
	m.Test(t)

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	return m
}

func (that *MockRandom) IntN(n int) int {
	args := that.Called(n)
	return args.Int(0)
}

// Draws expects IntN(n) to return each value once, in order.
func (that *MockRandom) Draws(n int, values ...int) *MockRandom {
	for _, v := range values {
		that.On("IntN", n).Return(v).Once()
	}
	return that
}
