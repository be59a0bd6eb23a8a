package vonage

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// VerifyRequest enumerates every option the Verify API accepts here.
// Zero values are omitted from the vendor call.
type VerifyRequest struct {
	Number     string
	Brand      string
	CodeLength int
	Locale     string
	Channel    string
	WorkflowID int
	PinExpiry  int

	// Silent authentication parameters, sent only when set.
	AppHash               string
	SDKVersion            string
	DeviceModel           string
	OSVersion             string
	CountryCode           string
	SourceIP              string
	SilentAuthTimeoutSecs int
}

type VerifyResult struct {
	RequestID  string `json:"requestId"`
	Status     Status `json:"status"`
	SilentAuth bool   `json:"silentAuth"`
	NextStep   string `json:"nextStep"`
}

type CheckResult struct {
	RequestID string `json:"requestId"`
	Status    Status `json:"status"`
	Verified  bool   `json:"verified"`
	Price     string `json:"price,omitempty"`
	Currency  string `json:"currency,omitempty"`
	ErrorText string `json:"errorText,omitempty"`
}

type CancelResult struct {
	RequestID string `json:"requestId"`
	Status    Status `json:"status"`
	Cancelled bool   `json:"cancelled"`
	ErrorText string `json:"errorText,omitempty"`
}

// RequestVerification starts a verification attempt for number. A non-zero
// vendor status is returned as a *ProviderError.
func (c *Client) RequestVerification(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	creds, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("api_key", creds.APIKey)
	form.Set("api_secret", creds.APISecret)
	form.Set("number", req.Number)
	form.Set("brand", req.Brand)
	if req.CodeLength > 0 {
		form.Set("code_length", strconv.Itoa(req.CodeLength))
	}
	if req.Locale != "" {
		form.Set("lg", req.Locale)
	}
	if req.WorkflowID > 0 {
		form.Set("workflow_id", strconv.Itoa(req.WorkflowID))
	}
	if req.PinExpiry > 0 {
		form.Set("pin_expiry", strconv.Itoa(req.PinExpiry))
	}
	if req.CountryCode != "" {
		form.Set("country", req.CountryCode)
	}
	if req.AppHash != "" {
		form.Set("app_hash", req.AppHash)
	}
	if req.SDKVersion != "" {
		form.Set("sdk_version", req.SDKVersion)
	}
	if req.DeviceModel != "" {
		form.Set("device_model", req.DeviceModel)
	}
	if req.OSVersion != "" {
		form.Set("os_version", req.OSVersion)
	}
	if req.SourceIP != "" {
		form.Set("source_ip", req.SourceIP)
	}
	if req.SilentAuthTimeoutSecs > 0 {
		form.Set("silent_auth_timeout_secs", strconv.Itoa(req.SilentAuthTimeoutSecs))
	}
	// Channel is validated upstream but not sent; this Verify version picks
	// the delivery channel from the workflow.

	body, err := c.postForm(ctx, c.APIHost+"/verify/json", form)
	if err != nil {
		return nil, err
	}

	var res struct {
		RequestID string `json:"request_id"`
		Status    string `json:"status"`
		ErrorText string `json:"error_text"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}

	if res.Status != "0" {
		text := res.ErrorText
		if text == "" {
			text = verifyStatusMessage(res.Status)
		}
		return nil, &ProviderError{Code: res.Status, Text: text}
	}

	silentAuth := req.WorkflowID == 1
	nextStep := "Check the verification code using the /check-verification endpoint with the requestId and code"
	if silentAuth {
		nextStep = "Silent authentication in progress; poll /check-verification with the requestId"
	}

	return &VerifyResult{
		RequestID:  res.RequestID,
		Status:     Status{Code: res.Status, Message: verifyStatusMessage(res.Status)},
		SilentAuth: silentAuth,
		NextStep:   nextStep,
	}, nil
}

// CheckVerification submits the user-entered code. A failed check is not an
// error: the result carries verified=false and the mapped status message.
func (c *Client) CheckVerification(ctx context.Context, requestID, code string) (*CheckResult, error) {
	creds, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("api_key", creds.APIKey)
	form.Set("api_secret", creds.APISecret)
	form.Set("request_id", requestID)
	form.Set("code", code)

	body, err := c.postForm(ctx, c.APIHost+"/verify/check/json", form)
	if err != nil {
		return nil, err
	}

	var res struct {
		RequestID string `json:"request_id"`
		Status    string `json:"status"`
		Price     string `json:"price"`
		Currency  string `json:"currency"`
		ErrorText string `json:"error_text"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}

	if res.RequestID == "" {
		res.RequestID = requestID
	}

	result := &CheckResult{
		RequestID: res.RequestID,
		Status:    Status{Code: res.Status, Message: verifyStatusMessage(res.Status)},
		Verified:  res.Status == "0",
		Price:     res.Price,
		Currency:  res.Currency,
	}
	if !result.Verified {
		result.ErrorText = res.ErrorText
		if result.ErrorText == "" {
			result.ErrorText = verifyStatusMessage(res.Status)
		}
	}
	return result, nil
}

// CancelVerification cancels an in-flight verification attempt.
func (c *Client) CancelVerification(ctx context.Context, requestID string) (*CancelResult, error) {
	creds, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("api_key", creds.APIKey)
	form.Set("api_secret", creds.APISecret)
	form.Set("request_id", requestID)
	form.Set("cmd", "cancel")

	body, err := c.postForm(ctx, c.APIHost+"/verify/control/json", form)
	if err != nil {
		return nil, err
	}

	var res struct {
		Status    string `json:"status"`
		Command   string `json:"command"`
		ErrorText string `json:"error_text"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}

	result := &CancelResult{
		RequestID: requestID,
		Status:    Status{Code: res.Status, Message: verifyStatusMessage(res.Status)},
		Cancelled: res.Status == "0",
	}
	if !result.Cancelled {
		result.ErrorText = res.ErrorText
		if result.ErrorText == "" {
			result.ErrorText = verifyStatusMessage(res.Status)
		}
	}
	return result, nil
}
