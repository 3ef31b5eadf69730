package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mathquest/internal/cue"
	"mathquest/internal/storage"
)

type mockKV struct {
	mock.Mock
}

func (m *mockKV) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockKV) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockKV) SetMany(ctx context.Context, entries ...storage.Entry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *mockKV) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func TestFailedWriteRestoresRecord(t *testing.T) {
	ctx := context.Background()
	kv := &mockKV{}
	kv.On("Get", ctx, SaveKey).Return(`{"xp":40,"coins":30}`, true, nil)
	kv.On("Get", ctx, SoundKey).Return("", false, nil)
	kv.On("Get", ctx, ThemeKey).Return("", false, nil)
	kv.On("SetMany", ctx, mock.Anything).Return(nil).Once()

	rec := &cue.Recorder{}
	svc := NewService(kv, nil, Options{Logger: zaptest.NewLogger(t), Cue: rec})
	require.NoError(t, svc.Load(ctx))

	diskFull := errors.New("disk full")
	kv.On("SetMany", ctx, mock.Anything).Return(diskFull)

	_, err := svc.CompleteQuest(ctx, 1)
	require.ErrorIs(t, err, diskFull)
	_, err = svc.Purchase(ctx, 1)
	require.ErrorIs(t, err, diskFull)

	r := svc.Record()
	assert.Equal(t, 40, r.XP)
	assert.Equal(t, 30, r.Coins)
	assert.Equal(t, 0, r.QuestsCompleted)
	assert.Empty(t, r.Inventory)
	assert.Equal(t, 0, rec.Count(cue.QuestDone))
	assert.Equal(t, 0, rec.Count(cue.Purchase))

	states := svc.QuestStates([]Quest{mustQuest(t, 1)})
	assert.False(t, states[0].Completed)
	kv.AssertExpectations(t)
}

func TestLevelUpCueWaitsForCommit(t *testing.T) {
	ctx := context.Background()
	kv := &mockKV{}
	kv.On("Get", ctx, SaveKey).Return(`{"xp":90}`, true, nil)
	kv.On("Get", ctx, SoundKey).Return("", false, nil)
	kv.On("Get", ctx, ThemeKey).Return("", false, nil)
	kv.On("SetMany", ctx, mock.Anything).Return(nil).Once()

	rec := &cue.Recorder{}
	svc := NewService(kv, nil, Options{Logger: zaptest.NewLogger(t), Cue: rec})
	require.NoError(t, svc.Load(ctx))

	diskFull := errors.New("disk full")
	kv.On("SetMany", ctx, mock.Anything).Return(diskFull).Once()
	kv.On("SetMany", ctx, mock.Anything).Return(nil)

	_, err := svc.CompleteQuest(ctx, 1)
	require.ErrorIs(t, err, diskFull)
	assert.Equal(t, 1, svc.Record().Level)
	assert.Empty(t, rec.Tones)

	out, err := svc.CompleteQuest(ctx, 1)
	require.NoError(t, err)
	assert.True(t, out.LeveledUp)
	assert.Equal(t, 2, svc.Record().Level)
	assert.Equal(t, []cue.Tone{cue.LevelUp, cue.QuestDone}, rec.Tones)
}

func TestLoadSurfacesStorageErrors(t *testing.T) {
	ctx := context.Background()
	kv := &mockKV{}
	kv.On("Get", ctx, SaveKey).Return("", false, errors.New("kv get: locked"))

	svc := NewService(kv, nil, Options{})
	require.Error(t, svc.Load(ctx))
	kv.AssertNotCalled(t, "SetMany", mock.Anything, mock.Anything)
}
