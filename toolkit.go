package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	golambda "github.com/aws/aws-cdk-go/awscdklambdagoalpha/v2"
)

type VonageToolkitStackProps struct {
	awscdk.StackProps
}

func NewVonageToolkitStack(scope constructs.Construct, id string, props *VonageToolkitStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	stack := awscdk.NewStack(scope, &id, &sprops)

	// Lambda bundling options
	bundlingOptions := &golambda.BundlingOptions{
		GoBuildFlags: jsii.Strings(`-ldflags "-s -w"`),
		Environment: &map[string]*string{
			"CGO_ENABLED": jsii.String("0"),
		},
	}

	// Vonage API credentials live in an existing Secrets Manager entry
	// holding an {apiKey, apiSecret} JSON blob.

	credentialsSecret := awssecretsmanager.Secret_FromSecretNameV2(
		stack,
		jsii.String("GO_VonageApiCredentials"),
		jsii.String("vonage/api-credentials"),
	)

	lambdaEnvironment := &map[string]*string{
		"VONAGE_CREDENTIALS_SECRET_NAME": credentialsSecret.SecretName(),
		"STAGE":                          jsii.String("dev"),
	}

	// Creating Lambda functions and granting them secret access

	requestVerificationLambda := golambda.NewGoFunction(stack, jsii.String("GO_RequestVerification"), &golambda.GoFunctionProps{
		FunctionName: jsii.String("GO_RequestVerification"),
		Entry:        jsii.String("lambdas/request-verification"),
		Runtime:      awslambda.Runtime_PROVIDED_AL2(),
		Architecture: awslambda.Architecture_ARM_64(),
		Environment:  lambdaEnvironment,
		Bundling:     bundlingOptions,
	})

	checkVerificationLambda := golambda.NewGoFunction(stack, jsii.String("GO_CheckVerification"), &golambda.GoFunctionProps{
		FunctionName: jsii.String("GO_CheckVerification"),
		Entry:        jsii.String("lambdas/check-verification"),
		Runtime:      awslambda.Runtime_PROVIDED_AL2(),
		Architecture: awslambda.Architecture_ARM_64(),
		Environment:  lambdaEnvironment,
		Bundling:     bundlingOptions,
	})

	cancelVerificationLambda := golambda.NewGoFunction(stack, jsii.String("GO_CancelVerification"), &golambda.GoFunctionProps{
		FunctionName: jsii.String("GO_CancelVerification"),
		Entry:        jsii.String("lambdas/cancel-verification"),
		Runtime:      awslambda.Runtime_PROVIDED_AL2(),
		Architecture: awslambda.Architecture_ARM_64(),
		Environment:  lambdaEnvironment,
		Bundling:     bundlingOptions,
	})

	sendSmsLambda := golambda.NewGoFunction(stack, jsii.String("GO_SendSms"), &golambda.GoFunctionProps{
		FunctionName: jsii.String("GO_SendSms"),
		Entry:        jsii.String("lambdas/send-sms"),
		Runtime:      awslambda.Runtime_PROVIDED_AL2(),
		Architecture: awslambda.Architecture_ARM_64(),
		Environment:  lambdaEnvironment,
		Bundling:     bundlingOptions,
	})

	numberInsightLambda := golambda.NewGoFunction(stack, jsii.String("GO_NumberInsight"), &golambda.GoFunctionProps{
		FunctionName: jsii.String("GO_NumberInsight"),
		Entry:        jsii.String("lambdas/number-insight"),
		Runtime:      awslambda.Runtime_PROVIDED_AL2(),
		Architecture: awslambda.Architecture_ARM_64(),
		Environment:  lambdaEnvironment,
		Bundling:     bundlingOptions,
	})

	for _, function := range []golambda.GoFunction{
		requestVerificationLambda,
		checkVerificationLambda,
		cancelVerificationLambda,
		sendSmsLambda,
		numberInsightLambda,
	} {
		credentialsSecret.GrantRead(function, nil)
	}

	// Defining Rest API in API Gateway

	myGateway := awsapigateway.NewRestApi(stack, jsii.String("GO_VonageRestApi"), &awsapigateway.RestApiProps{
		DefaultCorsPreflightOptions: &awsapigateway.CorsOptions{
			AllowOrigins: &[]*string{jsii.String("*")},
			AllowMethods: &[]*string{jsii.String("OPTIONS"), jsii.String("POST")},
		},
		RestApiName: jsii.String("GO_VonageRestApi"),
	})

	routes := []struct {
		path     string
		function golambda.GoFunction
	}{
		{"request-verification", requestVerificationLambda},
		{"check-verification", checkVerificationLambda},
		{"cancel-verification", cancelVerificationLambda},
		{"send-sms", sendSmsLambda},
		{"number-insight", numberInsightLambda},
	}
	for _, route := range routes {
		resource := myGateway.Root().AddResource(jsii.String(route.path), nil)
		resource.AddMethod(jsii.String("POST"), awsapigateway.NewLambdaIntegration(route.function, nil), nil)
	}

	return stack
}

func main() {
	defer jsii.Close()

	app := awscdk.NewApp(nil)

	NewVonageToolkitStack(app, "VonageToolkitStack", &VonageToolkitStackProps{
		awscdk.StackProps{
			Env: env(),
		},
	})

	app.Synth(nil)
}

func env() *awscdk.Environment {
	return nil
}
