package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/ommangate/order-up-scholars/configs"
	"github.com/ommangate/order-up-scholars/internal/models"
)

type emailSender struct {
	cfg    configs.EmailConfig
	client *ses.Client
}

func newEmailSender(cfg configs.EmailConfig) *emailSender {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil
	}
	return &emailSender{cfg: cfg, client: ses.NewFromConfig(awsCfg)}
}

func (e *emailSender) orderPlaced(u models.User, o models.Order) error {
	if e.cfg.Sender == "" || u.Email == "" {
		return fmt.Errorf("email sender or recipient not configured")
	}

	subject := fmt.Sprintf("Canteen order %s confirmed", o.ID)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nYour canteen order has been placed.\n\n"+
			"Order ID: %s\nTotal Amount: Rs %.2f\nPickup QR: %s\n\n"+
			"We'll let you know when it's ready for pickup.\n",
		u.Name, o.ID, o.TotalAmount, o.QRCode)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Your canteen order has been placed.</p>
            <ul>
                <li>Order ID: %s</li>
                <li>Total Amount: Rs %.2f</li>
                <li>Pickup QR: %s</li>
            </ul>
            <p>We'll let you know when it's ready for pickup.</p>
        </body>
        </html>`, u.Name, o.ID, o.TotalAmount, o.QRCode)

	input := &ses.SendEmailInput{
		Source: aws.String(e.cfg.Sender),
		Destination: &types.Destination{
			ToAddresses: []string{u.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	if _, err := e.client.SendEmail(context.Background(), input); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
