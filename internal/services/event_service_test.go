package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetour/internal/models"
	"safetour/internal/services"
)

func TestEventLogNewestFirst(t *testing.T) {
	log := services.NewEventService()

	log.Append("u1", models.EventKindSOS, models.SeverityHigh, map[string]interface{}{"on": true})
	newest := log.Append("u2", models.EventKindAnomaly, models.SeverityHigh, map[string]interface{}{"reason": "speed spike"})

	recent := log.Recent(10)
	require.Len(t, recent, 2)
	assert.Equal(t, newest.ID, recent[0].ID)
	assert.Equal(t, models.EventKindAnomaly, recent[0].Type)
	assert.Equal(t, models.EventKindSOS, recent[1].Type)
}

func TestEventLogCapacityEviction(t *testing.T) {
	log := services.NewEventService()

	oldest := log.Append("u0", models.EventKindSOS, models.SeverityInfo, map[string]interface{}{"on": false})
	for i := 1; i <= services.EventLogCapacity; i++ {
		log.Append(fmt.Sprintf("u%d", i), models.EventKindSOS, models.SeverityHigh, map[string]interface{}{"on": true})
	}

	assert.Equal(t, services.EventLogCapacity, log.Len())

	recent := log.Recent(services.EventLogCapacity)
	require.Len(t, recent, services.EventLogCapacity)
	assert.Equal(t, fmt.Sprintf("u%d", services.EventLogCapacity), recent[0].UserID)

	for _, event := range recent {
		assert.NotEqual(t, oldest.ID, event.ID, "oldest event should have been evicted")
	}
}

func TestEventLogRecentLimit(t *testing.T) {
	log := services.NewEventService()
	for i := 0; i < 5; i++ {
		log.Append("u1", models.EventKindIncident, models.SeverityLow, nil)
	}

	assert.Len(t, log.Recent(3), 3)
	assert.Len(t, log.Recent(50), 5)
	assert.Empty(t, services.NewEventService().Recent(10))
}
