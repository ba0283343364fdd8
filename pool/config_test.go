package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopAllocator struct{}

func (noopAllocator) Allocate(SlotInfo[int]) (int, error) { return 0, nil }
func (noopAllocator) Deallocate(int)                      {}

func TestConfigBuilderDefaults(t *testing.T) {
	cfg, err := NewConfigBuilder[int](noopAllocator{}).Build()
	require.NoError(t, err)
	assert.Equal(t, defaultSize, cfg.GetSize())
	assert.NotNil(t, cfg.GetAllocator())
	assert.NotNil(t, cfg.GetExpiration())
	assert.NotNil(t, cfg.GetScheduler())
}

func TestConfigBuilderSettersOverrideDefaults(t *testing.T) {
	sched, err := NewScheduler(defaultThreadFactory{}, 1)
	require.NoError(t, err)

	cfg, err := NewConfigBuilder[int](noopAllocator{}).
		SetSize(3).
		SetTTL(5 * time.Minute).
		SetScheduler(sched).
		SetVerbose(true).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.GetSize())
	assert.Same(t, sched, cfg.GetScheduler())
	assert.True(t, cfg.IsVerbose())
}

func TestConfigBuilderRejectsNonPositiveTTL(t *testing.T) {
	_, err := NewConfigBuilder[int](noopAllocator{}).SetTTL(0).Build()
	assert.ErrorIs(t, err, ErrIllegalArgument)
}

func TestConfigBuilderRejectsNonPositiveSize(t *testing.T) {
	cfg, err := NewConfigBuilder[int](noopAllocator{}).SetSize(0).Build()
	assert.ErrorIs(t, err, ErrIllegalArgument)
	assert.Nil(t, cfg)
}

func TestConfigValidateRejectsNilAllocator(t *testing.T) {
	cfg := &Config[int]{size: 1, scheduler: DefaultScheduler()}
	assert.ErrorIs(t, cfg.validate(), ErrIllegalArgument)
}

func TestConfigValidateRejectsNilScheduler(t *testing.T) {
	cfg := &Config[int]{size: 1, allocator: noopAllocator{}}
	assert.ErrorIs(t, cfg.validate(), ErrIllegalArgument)
}

func TestConfigValidateRejectsZeroSize(t *testing.T) {
	cfg := &Config[int]{allocator: noopAllocator{}, scheduler: DefaultScheduler()}
	assert.ErrorIs(t, cfg.validate(), ErrIllegalArgument)
}
