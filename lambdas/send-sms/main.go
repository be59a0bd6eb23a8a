package main

import (
	"context"
	"log"

	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/credentials"
	sendsms "github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/handlers/send-sms"
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

	handler := sendsms.Handler{
		SmsClient: vonage.NewClient(resolver),
	}

	lambda.Start(handler.Handle)
}
