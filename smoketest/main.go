// Command smoketest drives a deployed stack end to end: it sends a test SMS,
// looks up number insight, then requests and cancels a verification. It needs
// API_BASE_URL, TEST_PHONE_NUMBER and SENDER_ID set.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/thanhpk/randstr"
)

func main() {
	baseURL := os.Getenv("API_BASE_URL")
	testNumber := os.Getenv("TEST_PHONE_NUMBER")
	senderID := os.Getenv("SENDER_ID")
	if baseURL == "" || testNumber == "" || senderID == "" {
		log.Fatal("API_BASE_URL, TEST_PHONE_NUMBER and SENDER_ID must be set")
	}

	client := &http.Client{Timeout: 30 * time.Second}

	smsResponse, err := post(client, baseURL+"/send-sms", map[string]interface{}{
		"from":      senderID,
		"to":        testNumber,
		"text":      fmt.Sprintf("Toolkit smoke test %s", randstr.String(8)),
		"clientRef": uuid.NewString()[:8],
	})
	if err != nil {
		log.Fatalf("send-sms failed: %v", err)
	}
	log.Printf("send-sms: messageId=%v deliveryStatus=%v", smsResponse["messageId"], smsResponse["deliveryStatus"])

	insightResponse, err := post(client, baseURL+"/number-insight", map[string]interface{}{
		"phoneNumber": testNumber,
	})
	if err != nil {
		log.Fatalf("number-insight failed: %v", err)
	}
	log.Printf("number-insight: success=%v", insightResponse["success"])

	verifyResponse, err := post(client, baseURL+"/request-verification", map[string]interface{}{
		"number": testNumber,
		"brand":  "VonageToolkit",
	})
	if err != nil {
		log.Fatalf("request-verification failed: %v", err)
	}
	requestID, _ := verifyResponse["requestId"].(string)
	log.Printf("request-verification: requestId=%s", requestID)

	if requestID != "" {
		cancelResponse, err := post(client, baseURL+"/cancel-verification", map[string]interface{}{
			"requestId": requestID,
		})
		if err != nil {
			log.Fatalf("cancel-verification failed: %v", err)
		}
		log.Printf("cancel-verification: cancelled=%v", cancelResponse["cancelled"])
	}
}

func post(client *http.Client, url string, payload map[string]interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	res, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", res.StatusCode, data)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}
