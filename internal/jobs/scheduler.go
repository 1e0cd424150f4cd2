package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"rentiva/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"github.com/hibiken/asynq"
)

// leaseExpiryWindow is how far ahead the reminder job looks.
const leaseExpiryWindow = 30 * 24 * time.Hour

// JobScheduler manages periodic background jobs: the overdue-payment sweep
// and lease-expiry email reminders.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	paymentRepo repositories.PaymentRepository
	leaseRepo   repositories.LeaseRepository
	tenantRepo  repositories.TenantRepository
	asynqClient *asynq.Client
	jobs        map[string]gocron.Job
	mu          sync.RWMutex
}

func NewJobScheduler(paymentRepo repositories.PaymentRepository, leaseRepo repositories.LeaseRepository,
	tenantRepo repositories.TenantRepository, asynqClient *asynq.Client) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		paymentRepo: paymentRepo,
		leaseRepo:   leaseRepo,
		tenantRepo:  tenantRepo,
		asynqClient: asynqClient,
		jobs:        make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Overdue payment sweep - hourly
	overdueJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.markOverduePayments),
		gocron.WithName("overdue-payments"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create overdue payments job: %v", err)
	} else {
		js.jobs["overdue-payments"] = overdueJob
	}

	// Lease expiry reminders - daily
	expiryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.sendLeaseExpiryReminders),
		gocron.WithName("lease-expiry-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create lease expiry job: %v", err)
	} else {
		js.jobs["lease-expiry-reminders"] = expiryJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// markOverduePayments is the reconciliation that actually produces the
// Overdue status: payment creation never assigns it.
func (js *JobScheduler) markOverduePayments() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	marked, err := js.paymentRepo.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("overdue payment sweep failed: %v", err)
		return
	}
	if marked > 0 {
		log.Printf("overdue payment sweep marked %d payments", marked)
	}
}

func (js *JobScheduler) sendLeaseExpiryReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now().UTC()
	leases, err := js.leaseRepo.ListExpiring(ctx, now, now.Add(leaseExpiryWindow))
	if err != nil {
		log.Printf("lease expiry lookup failed: %v", err)
		return
	}

	for _, lease := range leases {
		tenant, err := js.tenantRepo.GetByID(ctx, lease.TenantID)
		if err != nil {
			log.Printf("lease expiry reminder: tenant %s lookup failed: %v", lease.TenantID, err)
			continue
		}

		body := fmt.Sprintf("Your lease ends on %s. Contact your property manager to discuss renewal.",
			lease.EndDate.Format("January 2, 2006"))
		task, err := NewEmailSendTask(tenant.Email, "Your lease is ending soon", body)
		if err != nil {
			log.Printf("lease expiry reminder: task build failed: %v", err)
			continue
		}
		if _, err := js.asynqClient.EnqueueContext(ctx, task); err != nil {
			log.Printf("lease expiry reminder: enqueue for %s failed: %v", tenant.Email, err)
		}
	}
}
