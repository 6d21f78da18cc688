package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderNumbers(t *testing.T) {
	prefix := NumberPrefix(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "PO202603", prefix)

	assert.Equal(t, "PO2026030001", NextNumber(prefix, ""))
	assert.Equal(t, "PO2026030042", NextNumber(prefix, "PO2026030041"))
	assert.Equal(t, "PO2026030001", NextNumber(prefix, "PO202603garbage"))
	assert.Equal(t, "PO20260310000", NextNumber(prefix, "PO2026039999"))
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range Statuses() {
		terminal := s == StatusReceived || s == StatusCancelled
		assert.Equal(t, terminal, s.IsTerminal(), s)
	}
	assert.True(t, CanTransition(StatusShipped, StatusReceived))
	assert.False(t, CanTransition(StatusShipped, StatusCancelled))
	assert.False(t, CanTransition(StatusDraft, StatusReceived))

	_, ok := ParseStatus("SHIPPED")
	assert.True(t, ok)
	_, ok = ParseStatus("shipped")
	assert.False(t, ok)
}
