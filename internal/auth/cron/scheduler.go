package cronjob

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/mcardoso/portfolio-backend/internal/auth/token"
)

type Scheduler struct {
	registry *token.Registry
	c        *cron.Cron
}

func NewScheduler(registry *token.Registry) *Scheduler {
	return &Scheduler{registry: registry}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// every 15 minutes
	_, err := c.AddFunc("0 */15 * * * *", func() {
		if n := s.registry.Sweep(); n > 0 {
			log.Printf("Session sweep removed %d expired token(s)", n)
		}
	})

	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (sweeping expired sessions every 15 minutes)")
	c.Start()
	s.c = c
}

// Stop halts the scheduler; in-flight jobs finish on their own.
func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}
