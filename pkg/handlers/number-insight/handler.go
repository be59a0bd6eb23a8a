package numberinsight

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/errors"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/protocol"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/validate"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"
)

type InsightApiClient interface {
	NumberInsight(ctx context.Context, number string) (*vonage.NumberInsightResult, error)
}

type Handler struct {
	InsightClient InsightApiClient
}

var insightSchema = []validate.Field{
	{Name: "phoneNumber", Check: validate.E164()},
}

type response struct {
	Success bool                        `json:"success"`
	Data    *vonage.NumberInsightResult `json:"data"`
	Message string                      `json:"message"`
}

func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (interface{}, error) {
	inv, err := protocol.Normalize(event)
	if err != nil {
		return respondError(nil, err)
	}

	if err := inv.Require("phoneNumber"); err != nil {
		return respondError(inv, err)
	}
	if err := validate.Fields(inv.Params, insightSchema); err != nil {
		return respondError(inv, err)
	}

	result, err := h.InsightClient.NumberInsight(ctx, inv.Param("phoneNumber"))
	if err != nil {
		return respondError(inv, err)
	}

	return protocol.Respond(inv, http.StatusOK, response{
		Success: true,
		Data:    result,
		Message: "Successfully retrieved number insight data",
	})
}

func respondError(inv *protocol.Invocation, err error) (interface{}, error) {
	status, message, details := pkgerrors.Classify(err)
	return protocol.RespondError(inv, status, message, details)
}
