package vonage_test

import (
	"context"
	"net/http/httptest"

	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/credentials"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"
)

type staticCreds struct{}

func (staticCreds) Resolve(context.Context, string) (credentials.Credentials, error) {
	return credentials.Credentials{APIKey: "testkey", APISecret: "testsecret"}, nil
}

func testClient(server *httptest.Server) *vonage.Client {
	return &vonage.Client{
		HTTPClient: server.Client(),
		Creds:      staticCreds{},
		SecretName: "vonage/api-credentials",
		APIHost:    server.URL,
		RestHost:   server.URL,
	}
}
