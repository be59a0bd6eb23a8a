package checkverification_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/protocol"
	checkverification "github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/handlers/check-verification"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"

	"github.com/aws/aws-lambda-go/events"
)

type mockVerify struct {
	Result *vonage.CheckResult
	Err    error
}

func (m *mockVerify) CheckVerification(context.Context, string, string) (*vonage.CheckResult, error) {
	return m.Result, m.Err
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
		result             *vonage.CheckResult
		err                error
		expectedBody       string
		expectedStatusCode int
	}{
		{
			name: "verified",
			body: `{"requestId":"req123","code":"1234"}`,
			result: &vonage.CheckResult{
				RequestID: "req123",
				Status:    vonage.Status{Code: "0", Message: "Success"},
				Verified:  true,
				Price:     "0.10000000",
				Currency:  "EUR",
			},
			expectedBody:       `{"requestId":"req123","status":{"code":"0","message":"Success"},"verified":true,"price":"0.10000000","currency":"EUR","message":"Phone number verified successfully"}`,
			expectedStatusCode: 200,
		},
		{
			name: "wrong code",
			body: `{"requestId":"req123","code":"0000"}`,
			result: &vonage.CheckResult{
				RequestID: "req123",
				Status:    vonage.Status{Code: "16", Message: "Verification not found"},
				ErrorText: "Verification not found",
			},
			expectedBody:       `{"requestId":"req123","status":{"code":"16","message":"Verification not found"},"verified":false,"message":"Verification failed: Verification not found"}`,
			expectedStatusCode: 200,
		},
		{
			name:               "missing request id",
			body:               `{"code":"1234"}`,
			expectedBody:       `{"error":"missing required parameter: requestId"}`,
			expectedStatusCode: 400,
		},
		{
			name:               "missing code",
			body:               `{"requestId":"req123"}`,
			expectedBody:       `{"error":"missing required parameter: code"}`,
			expectedStatusCode: 400,
		},
		{
			name:               "provider error",
			body:               `{"requestId":"req123","code":"1234"}`,
			err:                &vonage.ProviderError{Code: "6", Text: "Request not found"},
			expectedBody:       `{"details":{"code":"6","message":"Request not found"},"error":"Request not found"}`,
			expectedStatusCode: 500,
		},
	}

	for _, tC := range testCases {
		t.Run(tC.name, func(t *testing.T) {
			handler := checkverification.Handler{
				VerifyClient: &mockVerify{Result: tC.result, Err: tC.err},
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
		"apiPath": "/check-verification",
		"httpMethod": "POST",
		"requestBody": {"inputText": "{\"requestId\":\"req123\",\"code\":\"1234\"}"}
	}`)

	handler := checkverification.Handler{VerifyClient: &mockVerify{
		Result: &vonage.CheckResult{
			RequestID: "req123",
			Status:    vonage.Status{Code: "0", Message: "Success"},
			Verified:  true,
		},
	}}

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
	if agentResponse.Response.ResponseBody.Content != `{"requestId":"req123","status":{"code":"0","message":"Success"},"verified":true,"message":"Phone number verified successfully"}` {
		t.Errorf("Received content: %v is different than expected one", agentResponse.Response.ResponseBody.Content)
	}
}
