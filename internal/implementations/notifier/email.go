package notifier

import (
	"context"
	"fmt"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/notification"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESClient is the part of ses.Client the notifier needs.
type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Email mirrors notifications to a mailbox through Amazon SES.
type Email struct {
	ses SESClient
	// This address must be verified with Amazon SES.
	sender    string
	recipient string
	appURL    url.URL
}

func NewEmail(client SESClient, sender string, recipient string, appURL url.URL) *Email {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if sender == "" {
		panic(e.NewInvalidArgumentError("sender", "must not be empty"))
	}
	if recipient == "" {
		panic(e.NewInvalidArgumentError("recipient", "must not be empty"))
	}
	return &Email{ses: client, sender: sender, recipient: recipient, appURL: appURL}
}

func NewSESClient(awsConfig aws.Config) *ses.Client {
	return ses.NewFromConfig(awsConfig)
}

func (s *Email) Display(ctx context.Context, n notification.Notification) error {
	body := n.Body
	if s.appURL.Host != "" {
		body = fmt.Sprintf("%s\n\n%s", n.Body, s.appURL.String())
	}
	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: aws.String(s.sender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{s.recipient},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(n.Title), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
				},
			},
		},
	)
	return err
}
