package sendsms

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	pkgerrors "github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/errors"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/protocol"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/validate"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"
)

type SmsApiClient interface {
	SendSMS(context.Context, vonage.SmsMessage) (*vonage.SmsResult, error)
}

type Handler struct {
	SmsClient SmsApiClient
}

var smsSchema = []validate.Field{
	{Name: "to", Check: validate.E164()},
	{Name: "type", Check: validate.OneOf("text", "unicode", "binary")},
	{Name: "ttl", Check: validate.IntRange(300000, 259200000)},
	{Name: "statusReportReq", Check: validate.Bool()},
	{Name: "webhookUrl", Check: validate.URL()},
	{Name: "webhookMethod", Check: validate.OneOf("GET", "POST")},
	{Name: "clientRef", Check: validate.MaxLength(40)},
}

func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (interface{}, error) {
	inv, err := protocol.Normalize(event)
	if err != nil {
		return respondError(nil, err)
	}

	if err := inv.Require("from", "to", "text"); err != nil {
		return respondError(inv, err)
	}
	if err := validate.Fields(inv.Params, smsSchema); err != nil {
		return respondError(inv, err)
	}

	ttl, _ := strconv.Atoi(inv.Param("ttl"))
	statusReportReq, _ := strconv.ParseBool(inv.Param("statusReportReq"))

	result, err := h.SmsClient.SendSMS(ctx, vonage.SmsMessage{
		From:            inv.Param("from"),
		To:              inv.Param("to"),
		Text:            inv.Param("text"),
		Type:            inv.Param("type"),
		TTL:             ttl,
		StatusReportReq: statusReportReq,
		WebhookURL:      inv.Param("webhookUrl"),
		WebhookMethod:   inv.Param("webhookMethod"),
		ClientRef:       inv.Param("clientRef"),
	})
	if err != nil {
		return respondError(inv, err)
	}

	return protocol.Respond(inv, http.StatusOK, result)
}

func respondError(inv *protocol.Invocation, err error) (interface{}, error) {
	status, message, details := pkgerrors.Classify(err)
	return protocol.RespondError(inv, status, message, details)
}
