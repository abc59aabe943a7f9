package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTravelPlanStatusIsValid(t *testing.T) {
	assert.True(t, TravelPlanStatusScheduled.IsValid())
	assert.True(t, TravelPlanStatusInProgress.IsValid())
	assert.True(t, TravelPlanStatusCompleted.IsValid())
	assert.False(t, TravelPlanStatus("Cancelled").IsValid())
	assert.False(t, TravelPlanStatus("").IsValid())
}

func TestHasMatchedOrder(t *testing.T) {
	linked := uuid.New()
	plan := &TravelPlan{MatchedOrders: []uuid.UUID{linked}}

	assert.True(t, plan.HasMatchedOrder(linked))
	assert.False(t, plan.HasMatchedOrder(uuid.New()))

	empty := &TravelPlan{}
	assert.False(t, empty.HasMatchedOrder(linked))
}
