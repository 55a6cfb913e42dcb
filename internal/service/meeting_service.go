package service

import (
	"context"
	"fmt"
	"time"

	"github.com/unirecords/registrar-backend/internal/model"
)

// MeetingService generates ordered meeting records for a group, continuing
// numbering across repeated calls.
type MeetingService struct {
	groups   GroupStore
	meetings MeetingStore
	atomic   Atomic
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(groups GroupStore, meetings MeetingStore, atomic Atomic) *MeetingService {
	return &MeetingService{groups: groups, meetings: meetings, atomic: atomic}
}

// DefineMeetings generates count meetings for a group, numbered from the
// current maximum plus one, dated one week apart starting at firstAt. Topics
// may be shorter than count; unmatched meetings carry no topic. The batch is
// persisted atomically and returned in ascending number order.
func (s *MeetingService) DefineMeetings(ctx context.Context, groupID, count int, firstAt time.Time, topics []string) ([]model.Meeting, error) {
	var created []model.Meeting

	err := s.atomic.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.groups.GetByID(ctx, groupID); err != nil {
			return err
		}

		maxNumber, err := s.meetings.MaxNumberByGroup(ctx, groupID)
		if err != nil {
			return fmt.Errorf("read max meeting number: %w", err)
		}

		batch := make([]*model.Meeting, 0, count)
		for i := 0; i < count; i++ {
			m := &model.Meeting{
				GroupID:       groupID,
				MeetingNumber: maxNumber + 1 + i,
				StartsAt:      firstAt.AddDate(0, 0, 7*i),
			}
			if i < len(topics) && topics[i] != "" {
				topic := topics[i]
				m.Topic = &topic
			}
			batch = append(batch, m)
		}

		if err := s.meetings.CreateBatch(ctx, batch); err != nil {
			return conflictFromUnique(err, "meeting number already used in this group")
		}

		created = make([]model.Meeting, len(batch))
		for i, m := range batch {
			created[i] = *m
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListMeetings retrieves all meetings of a group in ascending number order.
func (s *MeetingService) ListMeetings(ctx context.Context, groupID int) ([]model.Meeting, error) {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.meetings.ListByGroup(ctx, groupID)
}

// GetByID retrieves a single meeting.
func (s *MeetingService) GetByID(ctx context.Context, id int) (*model.Meeting, error) {
	return s.meetings.GetByID(ctx, id)
}
