package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleRunsBatch(t *testing.T) {
	m := newTestMachine(t)
	// 12 increments of V0, only 10 run per batch
	ops := make([]uint16, 12)
	for i := range ops {
		ops[i] = 0x7001
	}
	require.NoError(t, m.Load(program(ops...)))

	require.NoError(t, m.Cycle())
	s := m.Snapshot()
	assert.Equal(t, byte(10), s.Registers[0])
	assert.Equal(t, uint16(0x200+20), s.PC)
	assert.Equal(t, 1, m.display.presents)
}

func TestCycleBatchSizeOption(t *testing.T) {
	m := newTestMachine(t, WithBatchSize(3))
	require.NoError(t, m.Load(program(0x7001, 0x7001, 0x7001, 0x7001)))

	require.NoError(t, m.Cycle())
	assert.Equal(t, byte(3), m.Snapshot().Registers[0])
}

func TestTimerDecay(t *testing.T) {
	m := newTestMachine(t)
	// V1 = 5, DT = V1, then spin
	require.NoError(t, m.Load(program(0x6105, 0xF115, 0x1204)))

	require.NoError(t, m.Step())
	require.NoError(t, m.Step())
	require.Equal(t, byte(5), m.Snapshot().DelayTimer)

	for i := 4; i >= 0; i-- {
		require.NoError(t, m.Cycle())
		assert.Equal(t, byte(i), m.Snapshot().DelayTimer)
	}

	require.NoError(t, m.Cycle())
	assert.Equal(t, byte(0), m.Snapshot().DelayTimer)
}

func TestSoundTimerDrivesTone(t *testing.T) {
	m := newTestMachine(t, WithToneFrequency(523))
	// V1 = 2, ST = V1, then spin
	require.NoError(t, m.Load(program(0x6102, 0xF118, 0x1204)))

	require.NoError(t, m.Cycle())
	assert.Equal(t, byte(1), m.Snapshot().SoundTimer)
	assert.True(t, m.tone.playing)
	assert.Equal(t, 523, m.tone.frequency)

	require.NoError(t, m.Cycle())
	assert.Equal(t, byte(0), m.Snapshot().SoundTimer)
	assert.False(t, m.tone.playing)

	require.NoError(t, m.Cycle())
	assert.False(t, m.tone.playing)
}

func TestKeyWait(t *testing.T) {
	m := newTestMachine(t)
	// V2 = K, V3 += 1, spin
	require.NoError(t, m.Load(program(0xF20A, 0x7301, 0x1204)))
	m.state.DelayTimer = 3

	require.NoError(t, m.Cycle())
	assert.True(t, m.Paused())
	reg, ok := m.WaitingForKey()
	assert.True(t, ok)
	assert.Equal(t, byte(2), reg)

	s := m.Snapshot()
	assert.Equal(t, uint16(0x202), s.PC, "nothing runs past the wait")
	assert.Equal(t, byte(2), s.DelayTimer, "timers keep running")
	assert.Equal(t, 1, m.display.presents, "display keeps being presented")

	require.NoError(t, m.Cycle())
	assert.True(t, m.Paused())
	assert.Equal(t, uint16(0x202), m.Snapshot().PC)

	m.KeyReleased(0xC)
	m.KeyReleased(0x1) // single shot, dropped
	require.NoError(t, m.Cycle())

	s = m.Snapshot()
	assert.False(t, m.Paused())
	assert.Equal(t, byte(0xC), s.Registers[2])
	assert.Equal(t, byte(1), s.Registers[3])
}

func TestKeyReleaseWithoutWaitIsDropped(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.Load(program(0xF20A, 0x1202)))

	m.KeyReleased(0x5)
	require.NoError(t, m.Step())
	assert.True(t, m.Paused())

	require.NoError(t, m.Step())
	assert.True(t, m.Paused())

	m.KeyReleased(0x10) // not a hex key
	require.NoError(t, m.Step())
	assert.True(t, m.Paused())

	m.KeyReleased(0x7)
	require.NoError(t, m.Step())
	assert.False(t, m.Paused())
	assert.Equal(t, byte(0x7), m.Snapshot().Registers[2])
}

func TestSuspend(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.Load(program(0x6105, 0xF115, 0xF118, 0x7001, 0x1206)))
	m.Chip8.batchSize = 3

	require.NoError(t, m.Cycle())
	require.True(t, m.tone.playing)

	m.Suspend()
	assert.True(t, m.Suspended())
	before := m.Snapshot()

	require.NoError(t, m.Cycle())
	after := m.Snapshot()
	assert.Equal(t, before.PC, after.PC)
	assert.Equal(t, before.DelayTimer, after.DelayTimer)
	assert.False(t, m.tone.playing)
	assert.Equal(t, 2, m.display.presents)

	m.ToggleSuspend()
	assert.False(t, m.Suspended())
	require.NoError(t, m.Cycle())
	assert.NotEqual(t, before.PC, m.Snapshot().PC)
	assert.True(t, m.tone.playing)
}

func TestCycleStopsOnFault(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.Load(program(0x6001, 0x00EE)))

	err := m.Cycle()
	require.Error(t, err)
	assert.Equal(t, 0, m.display.presents)
	assert.Equal(t, byte(1), m.Snapshot().Registers[0])
}
