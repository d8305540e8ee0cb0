package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service. If fromEmail is empty the
// service is disabled and every send becomes a logged no-op.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to a newly signed-up account
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to MagiLearn!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: 'Segoe UI', Arial, sans-serif; line-height: 1.5; color: #1f2937; }
		.wrap { max-width: 560px; margin: 0 auto; padding: 16px; }
		.banner { background: #7c3aed; color: #fff; padding: 24px; text-align: center; border-radius: 8px 8px 0 0; }
		.body { background: #f5f3ff; padding: 28px; border-radius: 0 0 8px 8px; }
		.cta { display: inline-block; padding: 12px 28px; background: #7c3aed; color: #fff; text-decoration: none; border-radius: 8px; margin: 16px 0; }
		.fine { text-align: center; margin-top: 16px; font-size: 12px; color: #6b7280; }
	</style>
</head>
<body>
	<div class="wrap">
		<div class="banner">
			<h1>Welcome to MagiLearn!</h1>
		</div>
		<div class="body">
			<p>Hi %s,</p>
			<p>Your MagiLearn account is ready! Learning is about to get a lot more fun.</p>
			<p>Here's what you can do next:</p>
			<ul>
				<li>Play your starter mini-games and earn XP</li>
				<li>Spin the daily reward wheel to unlock new games</li>
				<li>Fill in the learning survey for a personalized plan</li>
				<li>Watch your skills grow on the dashboard</li>
			</ul>
			<p style="text-align: center;">
				<a href="%s" class="cta">Start Learning</a>
			</p>
		</div>
		<div class="fine">
			<p>This is an automated email from MagiLearn. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Your MagiLearn account is ready! Learning is about to get a lot more fun.

Here's what you can do next:
- Play your starter mini-games and earn XP
- Spin the daily reward wheel to unlock new games
- Fill in the learning survey for a personalized plan
- Watch your skills grow on the dashboard

Start learning: %s

---
This is an automated email from MagiLearn. Please do not reply.
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
