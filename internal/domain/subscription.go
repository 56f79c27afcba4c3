package domain

import "time"

// Subscription links a subscriber to the channel (another user) they follow.
type Subscription struct {
	ID           int64     `json:"_id" gorm:"primaryKey"`
	SubscriberID int64     `json:"subscriber" gorm:"not null;uniqueIndex:idx_subscriber_channel"`
	ChannelID    int64     `json:"channel" gorm:"not null;index;uniqueIndex:idx_subscriber_channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Subscription) TableName() string { return "subscriptions" }
