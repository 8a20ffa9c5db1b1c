package services

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"leave-management-api/config"
	"leave-management-api/models"
)

// Dispatcher delivers a message to one address. Delivery is best-effort:
// implementations must never propagate failure back to the caller.
type Dispatcher interface {
	Send(toEmail, subject, body string)
}

// sendMailFunc is swapped out in tests.
var sendMailFunc = config.SendMail

type mailJob struct {
	to      string
	subject string
	body    string
}

// MailDispatcher queues messages and delivers them from a background worker,
// so a slow mail server can never stall an approval. Each delivered message
// is mirrored as an in-app notification row for the recipient. A full queue
// drops the message and logs it.
type MailDispatcher struct {
	db   *gorm.DB
	jobs chan mailJob
	done chan struct{}
	once sync.Once
}

// NewMailDispatcher starts the delivery worker.
func NewMailDispatcher(db *gorm.DB) *MailDispatcher {
	d := &MailDispatcher{
		db:   db,
		jobs: make(chan mailJob, 256),
		done: make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *MailDispatcher) Send(toEmail, subject, body string) {
	if toEmail == "" {
		return
	}
	select {
	case d.jobs <- mailJob{to: toEmail, subject: subject, body: body}:
	default:
		log.Printf("notification queue full, dropping message to %s (%s)", toEmail, subject)
	}
}

// Close drains the queue and stops the worker. Used on shutdown and in tests.
func (d *MailDispatcher) Close() {
	d.once.Do(func() {
		close(d.jobs)
		<-d.done
	})
}

func (d *MailDispatcher) run() {
	defer close(d.done)
	for job := range d.jobs {
		if err := sendMailFunc([]string{job.to}, job.subject, job.body); err != nil {
			log.Printf("failed to send notification to %s: %v", job.to, err)
		}
		d.record(job)
	}
}

func (d *MailDispatcher) record(job mailJob) {
	if d.db == nil {
		return
	}
	var user models.User
	if err := d.db.Where("email = ?", job.to).First(&user).Error; err != nil {
		return
	}
	n := models.Notification{
		UserID:  user.UserID,
		Title:   job.subject,
		Message: job.body,
		Type:    "info",
	}
	if err := d.db.Create(&n).Error; err != nil {
		log.Printf("failed to record notification for %s: %v", job.to, err)
	}
}
