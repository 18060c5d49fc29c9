package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, VerdictExceptional},
		{80, VerdictExceptional},
		{79, VerdictStrongPotential},
		{70, VerdictStrongPotential},
		{69, VerdictPromising},
		{60, VerdictPromising},
		{59, VerdictNeedsWork},
		{50, VerdictNeedsWork},
		{49, VerdictEarlyStage},
		{0, VerdictEarlyStage},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, VerdictFor(tt.score), "score=%d", tt.score)
	}
}

func TestInvestorSignalFor(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{90, SignalHigh},
		{75, SignalHigh},
		{74, SignalMedium},
		{60, SignalMedium},
		{59, SignalLow},
		{0, SignalLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, InvestorSignalFor(tt.score), "score=%d", tt.score)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 25, ClampScore(10, 25, 90))
	assert.Equal(t, 90, ClampScore(110, 25, 90))
	assert.Equal(t, 60, ClampScore(60, 25, 90))
	assert.Equal(t, 0, ClampScore(-5, 0, 100))
	assert.Equal(t, 100, ClampScore(101, 0, 100))
}
