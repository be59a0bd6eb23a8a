package errors

import (
	stderrors "errors"
	"log"
	"net/http"

	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/credentials"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/protocol"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/validate"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"
)

// Classify maps an error to the HTTP status code, caller-facing message and
// optional details to render. Validation and extraction failures surface
// their own message as 400; vendor-reported statuses pass through code and
// text; everything else is a logged internal error.
func Classify(err error) (int, string, map[string]interface{}) {
	var missing *protocol.MissingParameterError
	var invalid *validate.Error
	var provider *vonage.ProviderError

	switch {
	case stderrors.Is(err, protocol.ErrMalformedRequest):
		return http.StatusBadRequest, "invalid request format", nil

	case stderrors.As(err, &missing):
		return http.StatusBadRequest, missing.Error(), nil

	case stderrors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Message, nil

	case stderrors.As(err, &provider):
		return http.StatusInternalServerError, provider.Text, map[string]interface{}{
			"code":    provider.Code,
			"message": provider.Text,
		}

	case stderrors.Is(err, credentials.ErrCredentialsNotFound):
		log.Println(err.Error())
		return http.StatusInternalServerError, "internal server error", nil

	default:
		log.Println(err.Error())
		return http.StatusInternalServerError, "internal server error", nil
	}
}
