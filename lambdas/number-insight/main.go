package main

import (
	"context"
	"log"

	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/credentials"
	numberinsight "github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/handlers/number-insight"
	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/vonage"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

func main() {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	resolver := &credentials.Resolver{
		SecretsClient: secretsmanager.NewFromConfig(cfg),
	}

	handler := numberinsight.Handler{
		InsightClient: vonage.NewClient(resolver),
	}

	lambda.Start(handler.Handle)
}
