package sendsms_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/protocol"
	sendsms "github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/handlers/send-sms"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"

	"github.com/aws/aws-lambda-go/events"
)

type mockSms struct {
	Result *vonage.SmsResult
	Err    error
	LastMessage vonage.SmsMessage
}

func (m *mockSms) SendSMS(_ context.Context, msg vonage.SmsMessage) (*vonage.SmsResult, error) {
	m.LastMessage = msg
	return m.Result, m.Err
}

func sentResult() *vonage.SmsResult {
	return &vonage.SmsResult{
		MessageID:      "abc",
		To:             "+12025550123",
		From:           "Acme",
		Status:         vonage.Status{Code: "0", Message: "Success"},
		DeliveryStatus: "sent",
		MessageCount:   "1",
		Timestamp:      "2024-08-01T12:00:00Z",
	}
}

func directEvent(t *testing.T, body string) json.RawMessage {
	t.Helper()
	event, err := json.Marshal(events.APIGatewayProxyRequest{Body: body})
	if err != nil {
		t.Fatalf("Error marshaling event: %v", err)
	}
	return event
}

func TestHandlerDirect(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		result             *vonage.SmsResult
		err                error
		expectedBody       string
		expectedStatusCode int
	}{
		{
			name:               "success",
			body:               `{"from":"Acme","to":"+12025550123","text":"hi"}`,
			result:             sentResult(),
			expectedBody:       `{"messageId":"abc","to":"+12025550123","from":"Acme","status":{"code":"0","message":"Success"},"deliveryStatus":"sent","messageCount":"1","timestamp":"2024-08-01T12:00:00Z"}`,
			expectedStatusCode: 200,
		},
		{
			name:               "missing from",
			body:               `{"to":"+12025550123","text":"hi"}`,
			expectedBody:       `{"error":"missing required parameter: from"}`,
			expectedStatusCode: 400,
		},
		{
			name:               "missing text",
			body:               `{"from":"Acme","to":"+12025550123"}`,
			expectedBody:       `{"error":"missing required parameter: text"}`,
			expectedStatusCode: 400,
		},
		{
			name:               "invalid recipient",
			body:               `{"from":"Acme","to":"12025550123","text":"hi"}`,
			expectedBody:       `{"error":"to must be in E.164 format (e.g., +12025550123)"}`,
			expectedStatusCode: 400,
		},
		{
			name:               "invalid webhook method",
			body:               `{"from":"Acme","to":"+12025550123","text":"hi","webhookMethod":"PUT"}`,
			expectedBody:       `{"error":"webhookMethod must be one of: GET, POST"}`,
			expectedStatusCode: 400,
		},
		{
			name:               "invalid request body",
			body:               `not json`,
			expectedBody:       `{"error":"invalid request format"}`,
			expectedStatusCode: 400,
		},
		{
			name:               "provider error",
			body:               `{"from":"Acme","to":"+12025550123","text":"hi"}`,
			err:                &vonage.ProviderError{Code: "4", Text: "Invalid credentials"},
			expectedBody:       `{"details":{"code":"4","message":"Invalid credentials"},"error":"Invalid credentials"}`,
			expectedStatusCode: 500,
		},
	}

	for _, tC := range testCases {
		t.Run(tC.name, func(t *testing.T) {
			handler := sendsms.Handler{
				SmsClient: &mockSms{Result: tC.result, Err: tC.err},
			}

			res, err := handler.Handle(context.Background(), directEvent(t, tC.body))
			if err != nil {
				t.Fatalf("Error occured when handling request: %v", err)
			}

			proxyResponse, ok := res.(events.APIGatewayProxyResponse)
			if !ok {
				t.Fatalf("Expected APIGatewayProxyResponse, got %T", res)
			}
			if proxyResponse.Body != tC.expectedBody {
				t.Errorf("Received result: %v is different than expected one: %v", proxyResponse.Body, tC.expectedBody)
			}
			if proxyResponse.StatusCode != tC.expectedStatusCode {
				t.Errorf("Received status code: %v is different than expected one: %v", proxyResponse.StatusCode, tC.expectedStatusCode)
			}
		})
	}
}

func TestHandlerAgent(t *testing.T) {
	event := json.RawMessage(`{
		"actionGroup": "vonage-actions",
		"apiPath": "/send-sms",
		"httpMethod": "POST",
		"requestBody": {"inputText": "{\"from\":\"Acme\",\"to\":\"+12025550123\",\"text\":\"hi\",\"ttl\":300000}"}
	}`)

	mock := &mockSms{Result: sentResult()}
	handler := sendsms.Handler{SmsClient: mock}

	res, err := handler.Handle(context.Background(), event)
	if err != nil {
		t.Fatalf("Error occured when handling request: %v", err)
	}

	agentResponse, ok := res.(protocol.AgentResponse)
	if !ok {
		t.Fatalf("Expected AgentResponse, got %T", res)
	}
	if agentResponse.Response.HTTPStatusCode != 200 {
		t.Errorf("Received status code: %v is different than expected one: 200", agentResponse.Response.HTTPStatusCode)
	}
	if agentResponse.Response.ActionGroup != "vonage-actions" {
		t.Errorf("Received action group: %v is different than expected one", agentResponse.Response.ActionGroup)
	}
	if mock.LastMessage.TTL != 300000 {
		t.Errorf("Received ttl: %v is different than expected one: 300000", mock.LastMessage.TTL)
	}

	var payload vonage.SmsResult
	if err := json.Unmarshal([]byte(agentResponse.Response.ResponseBody.Content), &payload); err != nil {
		t.Fatalf("Error unmarshaling agent content: %v", err)
	}
	if payload.MessageID != "abc" || payload.DeliveryStatus != "sent" {
		t.Errorf("Received payload: %+v is different than expected one", payload)
	}
}

func TestHandlerAgentMissingParameter(t *testing.T) {
	event := json.RawMessage(`{
		"actionGroup": "vonage-actions",
		"apiPath": "/send-sms",
		"requestBody": {"inputText": "{\"to\":\"+12025550123\",\"text\":\"hi\"}"}
	}`)

	handler := sendsms.Handler{SmsClient: &mockSms{}}

	res, err := handler.Handle(context.Background(), event)
	if err != nil {
		t.Fatalf("Error occured when handling request: %v", err)
	}

	agentResponse, ok := res.(protocol.AgentResponse)
	if !ok {
		t.Fatalf("Expected AgentResponse, got %T", res)
	}
	if agentResponse.Response.HTTPStatusCode != 400 {
		t.Errorf("Received status code: %v is different than expected one: 400", agentResponse.Response.HTTPStatusCode)
	}
	if agentResponse.Response.ResponseBody.Content != `{"error":"missing required parameter: from"}` {
		t.Errorf("Received content: %v is different than expected one", agentResponse.Response.ResponseBody.Content)
	}
}
