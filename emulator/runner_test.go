package emulator

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFrontend struct {
	polls  int
	quitAt int
}

func (f *mockFrontend) ProcessInput() bool {
	f.polls++
	return f.quitAt > 0 && f.polls >= f.quitAt
}

func TestRunUntilQuit(t *testing.T) {
	m := newTestMachine(t, WithRefreshRate(1000))
	require.NoError(t, m.Load(program(0x7001, 0x1200)))

	frontend := &mockFrontend{quitAt: 4}
	require.NoError(t, m.Run(context.Background(), frontend))

	assert.Equal(t, 4, frontend.polls)
	assert.Equal(t, 3, m.display.presents)
	assert.False(t, m.tone.playing)
}

func TestRunCancelled(t *testing.T) {
	m := newTestMachine(t, WithRefreshRate(1000))
	require.NoError(t, m.Load(program(0x1200)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := m.Run(ctx, &mockFrontend{})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRunReturnsFault(t *testing.T) {
	m := newTestMachine(t, WithRefreshRate(1000))
	require.NoError(t, m.Load(program(0x00EE)))

	err := m.Run(context.Background(), &mockFrontend{})
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}
