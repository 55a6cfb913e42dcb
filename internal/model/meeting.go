package model

import "time"

// Meeting represents one numbered session of a group. Meeting numbers are
// contiguous within the group, assigned starting at 1.
type Meeting struct {
	ID            int       `json:"id"`
	GroupID       int       `json:"group_id"`
	MeetingNumber int       `json:"meeting_number"`
	StartsAt      time.Time `json:"starts_at"`
	Topic         *string   `json:"topic,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DefineMeetingsRequest is the payload for generating a batch of meetings.
// Topics may be shorter than count; unmatched meetings carry no topic.
type DefineMeetingsRequest struct {
	Count   int       `json:"count" binding:"required,min=1,max=52"`
	FirstAt time.Time `json:"first_at" binding:"required"`
	Topics  []string  `json:"topics" binding:"omitempty,max=52,dive,max=255"`
}
