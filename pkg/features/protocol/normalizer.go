package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

type Protocol string

const (
	Direct Protocol = "direct"
	Agent  Protocol = "agent"
)

// ErrMalformedRequest is returned when an event matches neither the direct
// API Gateway shape nor a Bedrock agent action invocation.
var ErrMalformedRequest = errors.New("malformed request")

type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return "missing required parameter: " + e.Name
}

// Invocation is the protocol-independent view of an inbound event. Params
// holds every extracted parameter as a string regardless of which request
// encoding carried it, so handlers never re-inspect the raw event.
type Invocation struct {
	Protocol    Protocol
	ActionGroup string
	APIPath     string
	HTTPMethod  string
	SourceIP    string
	Params      map[string]string
}

func (inv *Invocation) Param(name string) string {
	return inv.Params[name]
}

func (inv *Invocation) Require(names ...string) error {
	for _, name := range names {
		if inv.Params[name] == "" {
			return &MissingParameterError{Name: name}
		}
	}
	return nil
}

// Normalize detects which caller protocol produced the event and extracts a
// flat parameter map. Bedrock agent invocations carry either an inputText
// JSON string or a properties array under content["application/json"]; direct
// calls carry parameters in the API Gateway request body.
func Normalize(event json.RawMessage) (*Invocation, error) {
	var probe struct {
		MessageVersion string          `json:"messageVersion"`
		ActionGroup    string          `json:"actionGroup"`
		APIPath        string          `json:"apiPath"`
		HTTPMethod     string          `json:"httpMethod"`
		RequestBody    json.RawMessage `json:"requestBody"`
		Body           string          `json:"body"`
		RequestContext struct {
			Identity struct {
				SourceIP string `json:"sourceIp"`
			} `json:"identity"`
		} `json:"requestContext"`
	}
	if err := json.Unmarshal(event, &probe); err != nil {
		return nil, ErrMalformedRequest
	}

	isAgent := probe.MessageVersion != "" ||
		(len(probe.RequestBody) > 0 && probe.ActionGroup != "" && probe.APIPath != "")

	if isAgent {
		params, err := agentParams(probe.RequestBody)
		if err != nil {
			return nil, err
		}
		method := probe.HTTPMethod
		if method == "" {
			method = "POST"
		}
		return &Invocation{
			Protocol:    Agent,
			ActionGroup: probe.ActionGroup,
			APIPath:     probe.APIPath,
			HTTPMethod:  method,
			Params:      params,
		}, nil
	}

	params := make(map[string]string)
	if probe.Body != "" {
		if err := flattenJSON([]byte(probe.Body), params); err != nil {
			return nil, ErrMalformedRequest
		}
	}
	return &Invocation{
		Protocol: Direct,
		SourceIP: probe.RequestContext.Identity.SourceIP,
		Params:   params,
	}, nil
}

func agentParams(requestBody json.RawMessage) (map[string]string, error) {
	params := make(map[string]string)
	if len(requestBody) == 0 {
		return params, nil
	}

	var body struct {
		InputText string          `json:"inputText"`
		Content   json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(requestBody, &body); err != nil {
		return nil, ErrMalformedRequest
	}

	switch {
	case body.InputText != "":
		if err := flattenJSON([]byte(body.InputText), params); err != nil {
			return nil, ErrMalformedRequest
		}

	case len(body.Content) > 0:
		var content map[string]struct {
			Properties []struct {
				Name  string `json:"name"`
				Value string `json:"value"`
			} `json:"properties"`
		}
		if err := json.Unmarshal(body.Content, &content); err == nil {
			for _, media := range content {
				for _, prop := range media.Properties {
					params[prop.Name] = prop.Value
				}
			}
			return params, nil
		}

		// Some callers send the content as a serialized JSON string.
		var serialized string
		if err := json.Unmarshal(body.Content, &serialized); err != nil {
			return nil, ErrMalformedRequest
		}
		if err := flattenJSON([]byte(serialized), params); err != nil {
			return nil, ErrMalformedRequest
		}
	}

	return params, nil
}

func flattenJSON(data []byte, into map[string]string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return err
	}

	for key, value := range fields {
		switch v := value.(type) {
		case string:
			into[key] = v
		case json.Number:
			into[key] = v.String()
		case bool:
			into[key] = strconv.FormatBool(v)
		case nil:
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return err
			}
			into[key] = string(raw)
		}
	}
	return nil
}
