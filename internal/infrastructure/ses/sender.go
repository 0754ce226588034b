package ses

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/email-otp-api/internal/config"
	"github.com/email-otp-api/internal/infrastructure/email"
)

// Sender delivers OTP emails via AWS SES.
type Sender struct {
	client *sesv2.Client
	from   string
	ttl    time.Duration
}

func NewSender(cfg *config.Config) (*Sender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SESRegion),
	)
	if err != nil {
		return nil, err
	}
	return &Sender{
		client: sesv2.NewFromConfig(awsCfg),
		from:   cfg.SenderEmail,
		ttl:    cfg.OTPTTL,
	}, nil
}

func (s *Sender) Deliver(ctx context.Context, to, code string) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(email.Subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(email.HTMLBody(code, s.ttl))},
					Text: &types.Content{Data: aws.String(email.TextBody(code, s.ttl))},
				},
			},
		},
	})
	return err
}
