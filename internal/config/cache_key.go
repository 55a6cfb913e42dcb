package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's session
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:student:%d", studentID)
}

// MeetingAttendanceChannel returns the Redis PubSub channel name for a
// meeting's live attendance feed.
func (r *CacheKeyStruct) MeetingAttendanceChannel(meetingID int) string {
	return fmt.Sprintf("meeting:%d:attendance", meetingID)
}

var CacheKey = NewCacheKeyStruct()
