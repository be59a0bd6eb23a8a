package cancelverification

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/errors"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/protocol"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"
)

type VerifyApiClient interface {
	CancelVerification(ctx context.Context, requestID string) (*vonage.CancelResult, error)
}

type Handler struct {
	VerifyClient VerifyApiClient
}

type response struct {
	RequestID string        `json:"requestId"`
	Status    vonage.Status `json:"status"`
	Cancelled bool          `json:"cancelled"`
	Message   string        `json:"message"`
}

func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (interface{}, error) {
	inv, err := protocol.Normalize(event)
	if err != nil {
		return respondError(nil, err)
	}

	if err := inv.Require("requestId"); err != nil {
		return respondError(inv, err)
	}

	result, err := h.VerifyClient.CancelVerification(ctx, inv.Param("requestId"))
	if err != nil {
		return respondError(inv, err)
	}

	message := "Verification request cancelled"
	if !result.Cancelled {
		message = "Cancellation failed: " + result.Status.Message
	}

	return protocol.Respond(inv, http.StatusOK, response{
		RequestID: result.RequestID,
		Status:    result.Status,
		Cancelled: result.Cancelled,
		Message:   message,
	})
}

func respondError(inv *protocol.Invocation, err error) (interface{}, error) {
	status, message, details := pkgerrors.Classify(err)
	return protocol.RespondError(inv, status, message, details)
}
