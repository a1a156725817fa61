package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// CronService owns the scheduled jobs. The engines themselves carry no
// timers; this is the single caller of the nightly membership sweep.
type CronService struct {
	membershipService   *MembershipService
	notificationService *NotificationService
	scheduler           *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(membershipService *MembershipService, notificationService *NotificationService) *CronService {
	return &CronService{
		membershipService:   membershipService,
		notificationService: notificationService,
		scheduler:           cron.New(),
	}
}

// Start registers the jobs and launches the scheduler
func (s *CronService) Start() error {
	// Membership sweep every night at 02:00
	if _, err := s.scheduler.AddFunc("0 2 * * *", s.runMembershipSweep); err != nil {
		return err
	}

	s.scheduler.Start()
	log.Println("🚀 CronService started (membership sweep at 02:00)")
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.scheduler.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runMembershipSweep() {
	result, err := s.membershipService.UpdateAll(context.Background())
	if err != nil {
		log.Printf("❌ Nightly membership sweep failed: %v", err)
		return
	}

	if result.Changed > 0 || len(result.Skipped) > 0 {
		s.notificationService.NotifySweepSummary(result)
	}
}
