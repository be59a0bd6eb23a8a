package protocol

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

type AgentResponseBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type AgentResponseDetail struct {
	ActionGroup    string            `json:"actionGroup"`
	APIPath        string            `json:"apiPath"`
	HTTPMethod     string            `json:"httpMethod"`
	HTTPStatusCode int               `json:"httpStatusCode"`
	ResponseBody   AgentResponseBody `json:"responseBody"`
}

type AgentResponse struct {
	MessageVersion string              `json:"messageVersion"`
	Response       AgentResponseDetail `json:"response"`
}

// Respond renders payload for whichever protocol the invocation arrived on.
// A nil invocation is rendered as a direct HTTP response.
func Respond(inv *Invocation, statusCode int, payload interface{}) (interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Respond(inv, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}

	if inv != nil && inv.Protocol == Agent {
		return AgentResponse{
			MessageVersion: "1.0",
			Response: AgentResponseDetail{
				ActionGroup:    inv.ActionGroup,
				APIPath:        inv.APIPath,
				HTTPMethod:     inv.HTTPMethod,
				HTTPStatusCode: statusCode,
				ResponseBody: AgentResponseBody{
					ContentType: "application/json",
					Content:     string(body),
				},
			},
		}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                     "application/json",
			"Access-Control-Allow-Origin":      "*",
			"Access-Control-Allow-Headers":     "Content-Type",
			"Access-Control-Allow-Methods":     "OPTIONS, POST",
			"Access-Control-Allow-Credentials": "true",
		},
		Body: string(body),
	}, nil
}

// RespondError renders an error for the active protocol as
// {"error": message, "details"?: details}.
func RespondError(inv *Invocation, statusCode int, message string, details map[string]interface{}) (interface{}, error) {
	payload := map[string]interface{}{"error": message}
	if len(details) > 0 {
		payload["details"] = details
	}
	return Respond(inv, statusCode, payload)
}
