package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// ErrCredentialsNotFound is returned when neither environment variables nor
// the secret store yield a complete api key / api secret pair.
var ErrCredentialsNotFound = errors.New("vonage api credentials not found")

const DefaultTTL = time.Hour

type SecretsManagerApiClient interface {
	GetSecretValue(context.Context, *secretsmanager.GetSecretValueInput, ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type Credentials struct {
	APIKey    string `json:"apiKey"`
	APISecret string `json:"apiSecret"`
}

type cacheEntry struct {
	creds     Credentials
	expiresAt time.Time
}

// Resolver resolves Vonage API credentials from environment variables or
// AWS Secrets Manager and caches them in memory. It is safe for concurrent
// use; simultaneous cold misses may each fetch the secret once.
type Resolver struct {
	SecretsClient SecretsManagerApiClient
	TTL           time.Duration
	Stage         string
	Now           func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func (r *Resolver) Resolve(ctx context.Context, secretName string) (Credentials, error) {
	now := r.now()

	r.mu.Lock()
	if entry, ok := r.cache[secretName]; ok && entry.expiresAt.After(now) {
		r.mu.Unlock()
		return entry.creds, nil
	}
	r.mu.Unlock()

	creds, err := r.fetch(ctx, secretName)
	if err != nil {
		return Credentials{}, err
	}

	r.mu.Lock()
	if r.cache == nil {
		r.cache = make(map[string]cacheEntry)
	}
	r.cache[secretName] = cacheEntry{creds: creds, expiresAt: now.Add(r.ttl())}
	r.mu.Unlock()

	return creds, nil
}

// ForceRefresh drops the cached entry for secretName and resolves again.
func (r *Resolver) ForceRefresh(ctx context.Context, secretName string) (Credentials, error) {
	r.mu.Lock()
	delete(r.cache, secretName)
	r.mu.Unlock()

	return r.Resolve(ctx, secretName)
}

func (r *Resolver) fetch(ctx context.Context, secretName string) (Credentials, error) {
	if key, secret := os.Getenv("VONAGE_API_KEY"), os.Getenv("VONAGE_API_SECRET"); key != "" && secret != "" {
		log.Println("using vonage credentials from environment variables")
		return Credentials{APIKey: key, APISecret: secret}, nil
	}

	if creds, ok := r.fetchSecret(ctx, secretName); ok {
		return creds, nil
	}
	if creds, ok := r.fetchSecret(ctx, secretName+"-"+r.stage()); ok {
		return creds, nil
	}

	return Credentials{}, ErrCredentialsNotFound
}

func (r *Resolver) fetchSecret(ctx context.Context, name string) (Credentials, bool) {
	if r.SecretsClient == nil {
		return Credentials{}, false
	}

	log.Printf("fetching secret %s from secrets manager", name)

	out, err := r.SecretsClient.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		log.Printf("error fetching secret %s: %v", name, err)
		return Credentials{}, false
	}

	var payload []byte
	switch {
	case out.SecretString != nil:
		payload = []byte(*out.SecretString)
	case out.SecretBinary != nil:
		payload = out.SecretBinary
	default:
		return Credentials{}, false
	}

	// Both key spellings occur in existing secrets.
	var secret struct {
		APIKey       string `json:"apiKey"`
		APISecret    string `json:"apiSecret"`
		EnvAPIKey    string `json:"VONAGE_API_KEY"`
		EnvAPISecret string `json:"VONAGE_API_SECRET"`
	}
	if err := json.Unmarshal(payload, &secret); err != nil {
		log.Printf("secret %s is not valid JSON: %v", name, err)
		return Credentials{}, false
	}

	creds := Credentials{APIKey: secret.APIKey, APISecret: secret.APISecret}
	if creds.APIKey == "" {
		creds.APIKey = secret.EnvAPIKey
	}
	if creds.APISecret == "" {
		creds.APISecret = secret.EnvAPISecret
	}

	if creds.APIKey == "" || creds.APISecret == "" {
		return Credentials{}, false
	}
	return creds, true
}

func (r *Resolver) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return DefaultTTL
}

func (r *Resolver) stage() string {
	if r.Stage != "" {
		return r.Stage
	}
	if stage := os.Getenv("STAGE"); stage != "" {
		return stage
	}
	return "dev"
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
