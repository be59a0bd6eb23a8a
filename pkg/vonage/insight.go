package vonage

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

type BasicInfo struct {
	InternationalFormat string `json:"internationalFormat"`
	NationalFormat      string `json:"nationalFormat"`
	CountryCode         string `json:"countryCode"`
	CountryName         string `json:"countryName"`
	CountryPrefix       string `json:"countryPrefix"`
}

type CarrierInfo struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	NetworkType string `json:"networkType"`
	NetworkCode string `json:"networkCode"`
}

type Validity struct {
	Valid     bool `json:"valid"`
	Reachable bool `json:"reachable"`
	Ported    bool `json:"ported"`
	Roaming   bool `json:"roaming"`
}

type RoamingInfo struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
	NetworkName string `json:"networkName"`
	NetworkCode string `json:"networkCode"`
}

type PortingInfo struct {
	Status          string `json:"status"`
	OriginalNetwork string `json:"originalNetwork"`
}

type CallerIdentity struct {
	CallerName string `json:"callerName"`
	CallerType string `json:"callerType"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

type AdvancedDetails struct {
	RoamingInfo    RoamingInfo    `json:"roamingInfo"`
	PortingInfo    PortingInfo    `json:"portingInfo"`
	CallerIdentity CallerIdentity `json:"callerIdentity"`
}

type RiskScore struct {
	Score          int    `json:"score"`
	Recommendation string `json:"recommendation"`
}

// NumberInsightResult is the canonical shape built from the advanced Number
// Insight payload. RawData keeps the untouched vendor response for
// traceability. Missing basic and carrier fields default to "Unknown",
// advanced fields to "unknown"; downstream consumers match on exact case.
type NumberInsightResult struct {
	PhoneNumber     string          `json:"phoneNumber"`
	BasicInfo       BasicInfo       `json:"basicInfo"`
	CarrierInfo     CarrierInfo     `json:"carrierInfo"`
	Validity        Validity        `json:"validity"`
	AdvancedDetails AdvancedDetails `json:"advancedDetails"`
	RiskScore       RiskScore       `json:"riskScore"`
	Timestamp       string          `json:"timestamp"`
	RawData         json.RawMessage `json:"rawData"`
}

type insightCarrier struct {
	NetworkCode string `json:"network_code"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	NetworkType string `json:"network_type"`
}

type insightResponse struct {
	InternationalFormatNumber string          `json:"international_format_number"`
	NationalFormatNumber      string          `json:"national_format_number"`
	CountryCode               string          `json:"country_code"`
	CountryName               string          `json:"country_name"`
	CountryPrefix             string          `json:"country_prefix"`
	CurrentCarrier            *insightCarrier `json:"current_carrier"`
	OriginalCarrier           *insightCarrier `json:"original_carrier"`
	ValidNumber               string          `json:"valid_number"`
	Reachable                 string          `json:"reachable"`
	Ported                    string          `json:"ported"`
	Roaming                   string          `json:"roaming"`
	RoamingCountryCode        string          `json:"roaming_country_code"`
	RoamingNetworkName        string          `json:"roaming_network_name"`
	RoamingNetworkCode        string          `json:"roaming_network_code"`
	CallerName                string          `json:"caller_name"`
	CallerType                string          `json:"caller_type"`
	FirstName                 string          `json:"first_name"`
	LastName                  string          `json:"last_name"`
	RiskScore                 int             `json:"risk_score"`
	RiskRecommendation        string          `json:"risk_recommendation"`
}

// NumberInsight looks up carrier, validity, roaming, porting and risk
// metadata for number via the advanced Number Insight API.
func (c *Client) NumberInsight(ctx context.Context, number string) (*NumberInsightResult, error) {
	creds, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("api_key", creds.APIKey)
	query.Set("api_secret", creds.APISecret)
	query.Set("number", number)

	body, err := c.get(ctx, c.APIHost+"/ni/advanced/json", query)
	if err != nil {
		return nil, err
	}

	var res insightResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}

	currentCarrier := res.CurrentCarrier
	if currentCarrier == nil {
		currentCarrier = &insightCarrier{}
	}
	originalNetwork := ""
	if res.OriginalCarrier != nil {
		originalNetwork = res.OriginalCarrier.Name
	}

	return &NumberInsightResult{
		PhoneNumber: number,
		BasicInfo: BasicInfo{
			InternationalFormat: orDefault(res.InternationalFormatNumber, number),
			NationalFormat:      orDefault(res.NationalFormatNumber, number),
			CountryCode:         orUnknown(res.CountryCode),
			CountryName:         orUnknown(res.CountryName),
			CountryPrefix:       orUnknown(res.CountryPrefix),
		},
		CarrierInfo: CarrierInfo{
			Name:        orUnknown(currentCarrier.Name),
			Country:     orUnknown(currentCarrier.Country),
			NetworkType: orUnknown(currentCarrier.NetworkType),
			NetworkCode: orUnknown(currentCarrier.NetworkCode),
		},
		Validity: Validity{
			Valid:     res.ValidNumber == "valid",
			Reachable: res.Reachable == "reachable",
			Ported:    res.Ported == "ported",
			Roaming:   res.Roaming == "roaming",
		},
		AdvancedDetails: AdvancedDetails{
			RoamingInfo: RoamingInfo{
				Status:      orLowerUnknown(res.Roaming),
				CountryCode: orLowerUnknown(res.RoamingCountryCode),
				NetworkName: orLowerUnknown(res.RoamingNetworkName),
				NetworkCode: orLowerUnknown(res.RoamingNetworkCode),
			},
			PortingInfo: PortingInfo{
				Status:          orLowerUnknown(res.Ported),
				OriginalNetwork: orLowerUnknown(originalNetwork),
			},
			CallerIdentity: CallerIdentity{
				CallerName: orLowerUnknown(res.CallerName),
				CallerType: orLowerUnknown(res.CallerType),
				FirstName:  orLowerUnknown(res.FirstName),
				LastName:   orLowerUnknown(res.LastName),
			},
		},
		RiskScore: RiskScore{
			Score:          res.RiskScore,
			Recommendation: orLowerUnknown(res.RiskRecommendation),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RawData:   json.RawMessage(body),
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func orUnknown(value string) string {
	return orDefault(value, "Unknown")
}

func orLowerUnknown(value string) string {
	return orDefault(value, "unknown")
}
