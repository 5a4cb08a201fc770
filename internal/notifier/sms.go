package notifier

import (
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/ommangate/order-up-scholars/configs"
	"github.com/ommangate/order-up-scholars/internal/models"
)

type smsResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

type smsSender struct {
	cfg    configs.SMSConfig
	client *resty.Client
}

func newSMSSender(cfg configs.SMSConfig) *smsSender {
	return &smsSender{cfg: cfg, client: resty.New()}
}

func (s *smsSender) send(to, message string) error {
	var out smsResponse
	resp, err := s.client.R().
		SetHeader("Accept", "application/json").
		SetHeader("apikey", s.cfg.APIKey).
		SetFormData(map[string]string{
			"username": s.cfg.Username,
			"to":       to,
			"message":  message,
			"from":     s.cfg.SenderID,
		}).
		SetResult(&out).
		Post(s.cfg.URL)
	if err != nil {
		return fmt.Errorf("sms send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode(), out.SMSMessageData.Message)
	}
	return nil
}

func (s *smsSender) orderPlaced(u models.User, o models.Order) error {
	if u.Phone == "" {
		return nil
	}
	msg := fmt.Sprintf("Your canteen order %s has been placed. Total: Rs %.2f. Show QR %s at pickup.",
		o.ID, o.TotalAmount, o.QRCode)
	return s.send(u.Phone, msg)
}

func (s *smsSender) orderReady(u models.User, o models.Order) error {
	if u.Phone == "" {
		return nil
	}
	msg := fmt.Sprintf("Your canteen order %s is ready for pickup. Show QR %s at the counter.", o.ID, o.QRCode)
	return s.send(u.Phone, msg)
}
