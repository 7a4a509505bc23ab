package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessingStatus_CanTransitionTo(t *testing.T) {
	t.Run("allows one step forward", func(t *testing.T) {
		assert.True(t, StatusPending.CanTransitionTo(StatusExtracting))
		assert.True(t, StatusExtracting.CanTransitionTo(StatusAnalyzing))
		assert.True(t, StatusAnalyzing.CanTransitionTo(StatusGeneratingCopy))
		assert.True(t, StatusGeneratingCopy.CanTransitionTo(StatusCompleted))
	})

	t.Run("rejects skipping stages", func(t *testing.T) {
		assert.False(t, StatusPending.CanTransitionTo(StatusAnalyzing))
		assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
		assert.False(t, StatusExtracting.CanTransitionTo(StatusGeneratingCopy))
	})

	t.Run("rejects moving backwards", func(t *testing.T) {
		assert.False(t, StatusAnalyzing.CanTransitionTo(StatusExtracting))
		assert.False(t, StatusGeneratingCopy.CanTransitionTo(StatusPending))
	})

	t.Run("allows escape to FAILED from any non-terminal status", func(t *testing.T) {
		for _, s := range []ProcessingStatus{StatusPending, StatusExtracting, StatusAnalyzing, StatusGeneratingCopy} {
			assert.True(t, s.CanTransitionTo(StatusFailed), "from %s", s)
		}
	})

	t.Run("terminal statuses never transition", func(t *testing.T) {
		assert.False(t, StatusCompleted.CanTransitionTo(StatusFailed))
		assert.False(t, StatusFailed.CanTransitionTo(StatusPending))
		assert.False(t, StatusFailed.CanTransitionTo(StatusFailed))
	})
}

func TestProcessingStatus_Terminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusGeneratingCopy.Terminal())
}

func TestProcessingStatus_Progress(t *testing.T) {
	cases := map[ProcessingStatus]int{
		StatusPending:        10,
		StatusExtracting:     30,
		StatusAnalyzing:      60,
		StatusGeneratingCopy: 85,
		StatusCompleted:      100,
		StatusFailed:         0,
	}
	for status, want := range cases {
		assert.Equal(t, want, status.Progress(), "progress for %s", status)
	}
}

func TestProcessingStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusFailed.Valid())
	assert.False(t, ProcessingStatus("QUEUED").Valid())
	assert.False(t, ProcessingStatus("").Valid())
}

func TestProjectType_Normalize(t *testing.T) {
	assert.Equal(t, TypeEbook, TypeEbook.Normalize())
	assert.Equal(t, TypeOther, ProjectType("PODCAST").Normalize())
	assert.Equal(t, TypeOther, ProjectType("").Normalize())
	assert.Equal(t, TypeOther, ProjectType("ebook").Normalize(), "matching is case sensitive")
}
