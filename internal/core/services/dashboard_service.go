package services

import (
	"context"
	"time"

	"parishcare/internal/adapters/persistence/repositories"
)

// DashboardService aggregates figures for the admin home screen
type DashboardService struct {
	membershipService *MembershipService
	mortuaryService   *MortuaryService
	donationService   *DonationService
	eventRepo         *repositories.EventRepository
	sacramentRepo     *repositories.SacramentRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	membershipService *MembershipService,
	mortuaryService *MortuaryService,
	donationService *DonationService,
	eventRepo *repositories.EventRepository,
	sacramentRepo *repositories.SacramentRepository,
) *DashboardService {
	return &DashboardService{
		membershipService: membershipService,
		mortuaryService:   mortuaryService,
		donationService:   donationService,
		eventRepo:         eventRepo,
		sacramentRepo:     sacramentRepo,
	}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	Membership          *MembershipStats `json:"membership"`
	Mortuary            *RackStats       `json:"mortuary"`
	Donations           *DonationStats   `json:"donations"`
	UpcomingEvents      int64            `json:"upcoming_events"`
	PendingAppointments int64            `json:"pending_appointments"`
	AsOf                time.Time        `json:"as_of"`
}

// GetAdminDashboard returns the aggregate counts for the admin home
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	membership, err := s.membershipService.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	mortuary, err := s.mortuaryService.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	donations, err := s.donationService.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	upcomingEvents, err := s.eventRepo.CountUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	pendingAppts, err := s.sacramentRepo.CountPendingAfter(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	return &AdminDashboardData{
		Membership:          membership,
		Mortuary:            mortuary,
		Donations:           donations,
		UpcomingEvents:      upcomingEvents,
		PendingAppointments: pendingAppts,
		AsOf:                time.Now(),
	}, nil
}
