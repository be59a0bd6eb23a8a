package vonage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"
)

func TestSendSMS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sms/json" {
			t.Errorf("Received path: %v is different than expected one: /sms/json", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Error parsing form: %v", err)
		}
		if r.PostForm.Get("from") != "Acme" || r.PostForm.Get("to") != "+12025550123" || r.PostForm.Get("text") != "hi" {
			t.Errorf("Received form: %v is different than expected one", r.PostForm)
		}
		w.Write([]byte(`{
			"message-count": "1",
			"messages": [{
				"to": "+12025550123",
				"message-id": "abc",
				"status": "0",
				"remaining-balance": "3.14159265",
				"message-price": "0.03330000",
				"network": "23410"
			}]
		}`))
	}))
	defer server.Close()

	result, err := testClient(server).SendSMS(context.Background(), vonage.SmsMessage{
		From: "Acme",
		To:   "+12025550123",
		Text: "hi",
	})
	if err != nil {
		t.Fatalf("SendSMS returned error: %v", err)
	}
	if result.MessageID != "abc" {
		t.Errorf("Received message id: %v is different than expected one: abc", result.MessageID)
	}
	if result.Status.Code != "0" || result.Status.Message != "Success" {
		t.Errorf("Received status: %v is different than expected one", result.Status)
	}
	if result.DeliveryStatus != "sent" {
		t.Errorf("Received delivery status: %v is different than expected one: sent", result.DeliveryStatus)
	}
	if result.RemainingBalance != "3.14159265" || result.MessagePrice != "0.03330000" || result.Network != "23410" {
		t.Errorf("Account fields not passed through: %+v", result)
	}
}

func TestSendSMSOptionalParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Error parsing form: %v", err)
		}
		if r.PostForm.Get("type") != "unicode" || r.PostForm.Get("ttl") != "300000" {
			t.Errorf("Optional parameters not sent: %v", r.PostForm)
		}
		if r.PostForm.Get("status-report-req") != "1" || r.PostForm.Get("client-ref") != "order-42" {
			t.Errorf("Optional parameters not sent: %v", r.PostForm)
		}
		if r.PostForm.Get("callback") != "https://example.com/dlr" {
			t.Errorf("Webhook url not sent as callback: %v", r.PostForm)
		}
		w.Write([]byte(`{"message-count":"1","messages":[{"to":"+12025550123","message-id":"abc","status":"0"}]}`))
	}))
	defer server.Close()

	_, err := testClient(server).SendSMS(context.Background(), vonage.SmsMessage{
		From:            "Acme",
		To:              "+12025550123",
		Text:            "hi",
		Type:            "unicode",
		TTL:             300000,
		StatusReportReq: true,
		WebhookURL:      "https://example.com/dlr",
		ClientRef:       "order-42",
	})
	if err != nil {
		t.Fatalf("SendSMS returned error: %v", err)
	}
}

func TestSendSMSFailedDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"message-count": "1",
			"messages": [{
				"to": "+12025550123",
				"status": "7",
				"error-text": "Number barred"
			}]
		}`))
	}))
	defer server.Close()

	result, err := testClient(server).SendSMS(context.Background(), vonage.SmsMessage{
		From: "Acme",
		To:   "+12025550123",
		Text: "hi",
	})
	if err != nil {
		t.Fatalf("SendSMS returned error: %v", err)
	}
	if result.DeliveryStatus != "failed" {
		t.Errorf("Received delivery status: %v is different than expected one: failed", result.DeliveryStatus)
	}
	if result.Status.Message != "Number barred" {
		t.Errorf("Received status message: %v is different than expected one", result.Status.Message)
	}
	if result.ErrorText != "Number barred" {
		t.Errorf("Received error text: %v is different than expected one", result.ErrorText)
	}
}

func TestSendSMSEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message-count":"0","messages":[]}`))
	}))
	defer server.Close()

	if _, err := testClient(server).SendSMS(context.Background(), vonage.SmsMessage{
		From: "Acme",
		To:   "+12025550123",
		Text: "hi",
	}); err == nil {
		t.Error("Expected error for empty SMS response")
	}
}
