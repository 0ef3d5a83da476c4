package notify

import (
	"context"
	"time"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
	"github.com/oksasatya/gym-membership-directory/pkg/mailer"
	mailtpl "github.com/oksasatya/gym-membership-directory/pkg/mailer/templates"
)

const publishTimeout = 3 * time.Second

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RabbitNotifier turns directory events into email jobs for the email worker.
type RabbitNotifier struct {
	pub        Publisher
	gymName    string
	supportURL string
}

func NewRabbitNotifier(pub Publisher, gymName, supportURL string) *RabbitNotifier {
	return &RabbitNotifier{pub: pub, gymName: gymName, supportURL: supportURL}
}

func (n *RabbitNotifier) ProfileCreated(ctx context.Context, p entity.Profile) error {
	return n.publish(ctx, mailer.EmailJob{
		To:       p.Email,
		Template: mailtpl.Welcome,
		Data: mailtpl.ToMap(mailtpl.EmailData{
			Name:       p.Name,
			Email:      p.Email,
			GymName:    n.gymName,
			SupportURL: n.supportURL,
		}),
	})
}

func (n *RabbitNotifier) MemberSaved(ctx context.Context, m entity.Member, created bool) error {
	return n.publish(ctx, mailer.EmailJob{
		To:       m.Email,
		Template: mailtpl.SubscriptionUpdated,
		Data: mailtpl.ToMap(mailtpl.EmailData{
			Name:              m.Name,
			Email:             m.Email,
			GymName:           n.gymName,
			SupportURL:        n.supportURL,
			Created:           created,
			Status:            string(m.Status),
			MembershipType:    string(m.MembershipType),
			SubscriptionStart: m.SubscriptionStart,
			SubscriptionEnd:   m.SubscriptionEnd,
		}),
	})
}

// publish is bounded by its own timeout and survives cancellation of the
// request context.
func (n *RabbitNotifier) publish(ctx context.Context, job mailer.EmailJob) error {
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	return n.pub.PublishJSON(c, job)
}

var _ repo.Notifier = (*RabbitNotifier)(nil)
