package vonage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SmsMessage enumerates every option the SMS API accepts here. Zero values
// are omitted from the vendor call.
type SmsMessage struct {
	From            string
	To              string
	Text            string
	Type            string
	TTL             int
	StatusReportReq bool
	WebhookURL      string
	WebhookMethod   string
	ClientRef       string
}

type SmsResult struct {
	MessageID        string `json:"messageId"`
	To               string `json:"to"`
	From             string `json:"from"`
	Status           Status `json:"status"`
	DeliveryStatus   string `json:"deliveryStatus"`
	MessageCount     string `json:"messageCount,omitempty"`
	RemainingBalance string `json:"remainingBalance,omitempty"`
	MessagePrice     string `json:"messagePrice,omitempty"`
	Network          string `json:"network,omitempty"`
	ClientRef        string `json:"clientRef,omitempty"`
	ErrorText        string `json:"errorText,omitempty"`
	Timestamp        string `json:"timestamp"`
}

// SendSMS submits one message. DeliveryStatus is "failed" iff the vendor
// attached an error-text to the message record, "sent" otherwise.
func (c *Client) SendSMS(ctx context.Context, msg SmsMessage) (*SmsResult, error) {
	creds, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("api_key", creds.APIKey)
	form.Set("api_secret", creds.APISecret)
	form.Set("from", msg.From)
	form.Set("to", msg.To)
	form.Set("text", msg.Text)
	if msg.Type != "" {
		form.Set("type", msg.Type)
	}
	if msg.TTL > 0 {
		form.Set("ttl", strconv.Itoa(msg.TTL))
	}
	if msg.StatusReportReq {
		form.Set("status-report-req", "1")
	}
	if msg.WebhookURL != "" {
		form.Set("callback", msg.WebhookURL)
	}
	if msg.ClientRef != "" {
		form.Set("client-ref", msg.ClientRef)
	}

	body, err := c.postForm(ctx, c.RestHost+"/sms/json", form)
	if err != nil {
		return nil, err
	}

	var res struct {
		MessageCount string `json:"message-count"`
		Messages     []struct {
			To               string `json:"to"`
			MessageID        string `json:"message-id"`
			Status           string `json:"status"`
			RemainingBalance string `json:"remaining-balance"`
			MessagePrice     string `json:"message-price"`
			Network          string `json:"network"`
			ClientRef        string `json:"client-ref"`
			ErrorText        string `json:"error-text"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}
	if len(res.Messages) == 0 {
		return nil, fmt.Errorf("vonage: empty SMS response")
	}

	record := res.Messages[0]
	deliveryStatus := "sent"
	if record.ErrorText != "" {
		deliveryStatus = "failed"
	}

	return &SmsResult{
		MessageID:        record.MessageID,
		To:               record.To,
		From:             msg.From,
		Status:           Status{Code: record.Status, Message: smsStatusMessage(record.Status)},
		DeliveryStatus:   deliveryStatus,
		MessageCount:     res.MessageCount,
		RemainingBalance: record.RemainingBalance,
		MessagePrice:     record.MessagePrice,
		Network:          record.Network,
		ClientRef:        record.ClientRef,
		ErrorText:        record.ErrorText,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}, nil
}
