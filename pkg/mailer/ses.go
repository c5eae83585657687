// Package mailer delivers admin notification emails through AWS SESv2.
// Delivery is best-effort: transient failures are retried, a circuit
// breaker sheds load when SES is down, and errors never propagate to
// the submitting client.
package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/casacomune/community-api/pkg/circuitbreaker"
	"github.com/casacomune/community-api/pkg/logger"
	"github.com/casacomune/community-api/pkg/metrics"
	"github.com/casacomune/community-api/pkg/retry"
)

// Config holds SES mailer configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	FromAddress     string
	FromName        string
}

// Mailer sends emails via AWS SES
type Mailer struct {
	client  *sesv2.Client
	from    string
	breaker *gobreaker.CircuitBreaker
}

// New creates an SES mailer. Returns an error if credentials are
// missing or the AWS config cannot be assembled.
func New(cfg Config) (*Mailer, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("mail credentials are not configured")
	}
	if cfg.Region == "" {
		cfg.Region = "eu-west-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}

	return &Mailer{
		client:  sesv2.NewFromConfig(awsCfg),
		from:    from,
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("ses-mailer")),
	}, nil
}

// Send delivers a single plain-text email through SES, retrying
// transient failures
func (m *Mailer) Send(ctx context.Context, to, subject, textBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(textBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	err := retry.Do(ctx, retry.MailConfig(), "sesSendEmail", func() error {
		_, execErr := m.breaker.Execute(func() (interface{}, error) {
			return m.client.SendEmail(ctx, input)
		})
		return execErr
	})

	if err != nil {
		metrics.AdminNotifications.WithLabelValues("error").Inc()
		logger.Error("Failed to send notification email",
			zap.Error(err),
			zap.String("subject", subject))
		return fmt.Errorf("failed to send email: %w", err)
	}

	metrics.AdminNotifications.WithLabelValues("success").Inc()
	logger.Info("Notification email sent", zap.String("subject", subject))
	return nil
}
