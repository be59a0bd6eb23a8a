package checkverification

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/errors"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/protocol"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"
)

type VerifyApiClient interface {
	CheckVerification(ctx context.Context, requestID, code string) (*vonage.CheckResult, error)
}

type Handler struct {
	VerifyClient VerifyApiClient
}

type response struct {
	RequestID string        `json:"requestId"`
	Status    vonage.Status `json:"status"`
	Verified  bool          `json:"verified"`
	Price     string        `json:"price,omitempty"`
	Currency  string        `json:"currency,omitempty"`
	Message   string        `json:"message"`
}

func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (interface{}, error) {
	inv, err := protocol.Normalize(event)
	if err != nil {
		return respondError(nil, err)
	}

	if err := inv.Require("requestId", "code"); err != nil {
		return respondError(inv, err)
	}

	result, err := h.VerifyClient.CheckVerification(ctx, inv.Param("requestId"), inv.Param("code"))
	if err != nil {
		return respondError(inv, err)
	}

	message := "Phone number verified successfully"
	if !result.Verified {
		message = "Verification failed: " + result.Status.Message
	}

	return protocol.Respond(inv, http.StatusOK, response{
		RequestID: result.RequestID,
		Status:    result.Status,
		Verified:  result.Verified,
		Price:     result.Price,
		Currency:  result.Currency,
		Message:   message,
	})
}

func respondError(inv *protocol.Invocation, err error) (interface{}, error) {
	status, message, details := pkgerrors.Classify(err)
	return protocol.RespondError(inv, status, message, details)
}
