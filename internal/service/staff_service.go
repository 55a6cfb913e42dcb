package service

import (
	"context"

	"github.com/unirecords/registrar-backend/internal/model"
)

// StaffService reads deanery staff accounts. Accounts are provisioned with
// the create-staff command, not over the API.
type StaffService struct {
	staff StaffStore
}

// NewStaffService creates a new StaffService.
func NewStaffService(staff StaffStore) *StaffService {
	return &StaffService{staff: staff}
}

// GetByID retrieves a staff account.
func (s *StaffService) GetByID(ctx context.Context, id int) (*model.Staff, error) {
	return s.staff.GetByID(ctx, id)
}

// GetByEmail retrieves a staff account by email, for login.
func (s *StaffService) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	return s.staff.GetByEmail(ctx, email)
}
