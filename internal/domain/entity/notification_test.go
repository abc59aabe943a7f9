package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationTypeCategory(t *testing.T) {
	orderTypes := []NotificationType{
		NotificationOrderCreated, NotificationOrderUpdated,
		NotificationOrderDeleted, NotificationOrderMatched,
	}
	for _, notificationType := range orderTypes {
		assert.Equal(t, NotificationCategoryOrder, notificationType.Category(), string(notificationType))
	}

	planTypes := []NotificationType{
		NotificationTravelPlanCreated, NotificationTravelPlanUpdated,
		NotificationTravelPlanDeleted, NotificationTravelPlanMatched,
	}
	for _, notificationType := range planTypes {
		assert.Equal(t, NotificationCategoryTravelPlan, notificationType.Category(), string(notificationType))
	}

	assert.Equal(t, NotificationCategory(""), NotificationType("kyc_reviewed").Category())
}

func TestNotificationTypeIsValid(t *testing.T) {
	assert.True(t, NotificationOrderCreated.IsValid())
	assert.True(t, NotificationTravelPlanMatched.IsValid())
	assert.False(t, NotificationType("").IsValid())
	assert.False(t, NotificationType("something_else").IsValid())
}
