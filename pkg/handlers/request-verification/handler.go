package requestverification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	pkgerrors "github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/errors"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/protocol"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/validate"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"
)

type VerifyApiClient interface {
	RequestVerification(context.Context, vonage.VerifyRequest) (*vonage.VerifyResult, error)
}

type Handler struct {
	VerifyClient VerifyApiClient
}

var requestSchema = []validate.Field{
	{Name: "number", Check: validate.E164()},
	{Name: "codeLength", Check: validate.IntRange(4, 10)},
	{Name: "channel", Check: validate.OneOf("sms", "voice", "whatsapp")},
	{Name: "workflowId", Check: validate.Int()},
	{Name: "pinExpiry", Check: validate.Int()},
	{Name: "countryCode", Check: validate.Length(2)},
	{Name: "silentAuthTimeoutSecs", Check: validate.IntRange(5, 30)},
}

type response struct {
	RequestID   string        `json:"requestId"`
	Status      vonage.Status `json:"status"`
	PhoneNumber string        `json:"phoneNumber"`
	SilentAuth  bool          `json:"silentAuth"`
	NextStep    string        `json:"nextStep"`
	Message     string        `json:"message"`
}

func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (interface{}, error) {
	inv, err := protocol.Normalize(event)
	if err != nil {
		return respondError(nil, err)
	}

	if inv.Param("number") == "" && inv.Param("phoneNumber") != "" {
		inv.Params["number"] = inv.Param("phoneNumber")
	}

	if err := inv.Require("number", "brand"); err != nil {
		return respondError(inv, err)
	}
	if err := validate.Fields(inv.Params, requestSchema); err != nil {
		return respondError(inv, err)
	}

	req := vonage.VerifyRequest{
		Number:                inv.Param("number"),
		Brand:                 inv.Param("brand"),
		CodeLength:            intParam(inv, "codeLength"),
		Locale:                inv.Param("locale"),
		Channel:               inv.Param("channel"),
		WorkflowID:            intParam(inv, "workflowId"),
		PinExpiry:             intParam(inv, "pinExpiry"),
		AppHash:               inv.Param("appHash"),
		SDKVersion:            inv.Param("sdkVersion"),
		DeviceModel:           inv.Param("deviceModel"),
		OSVersion:             inv.Param("osVersion"),
		CountryCode:           inv.Param("countryCode"),
		SourceIP:              sourceIP(inv),
		SilentAuthTimeoutSecs: intParam(inv, "silentAuthTimeoutSecs"),
	}

	result, err := h.VerifyClient.RequestVerification(ctx, req)
	if err != nil {
		return respondError(inv, err)
	}

	message := fmt.Sprintf("Verification code sent to %s", req.Number)
	if result.SilentAuth {
		message = "Silent authentication in progress"
	}

	return protocol.Respond(inv, http.StatusOK, response{
		RequestID:   result.RequestID,
		Status:      result.Status,
		PhoneNumber: req.Number,
		SilentAuth:  result.SilentAuth,
		NextStep:    result.NextStep,
		Message:     message,
	})
}

func sourceIP(inv *protocol.Invocation) string {
	if ip := inv.Param("sourceIp"); ip != "" {
		return ip
	}
	return inv.SourceIP
}

// intParam converts an already validated numeric parameter.
func intParam(inv *protocol.Invocation, name string) int {
	n, _ := strconv.Atoi(inv.Param(name))
	return n
}

func respondError(inv *protocol.Invocation, err error) (interface{}, error) {
	status, message, details := pkgerrors.Classify(err)
	return protocol.RespondError(inv, status, message, details)
}
