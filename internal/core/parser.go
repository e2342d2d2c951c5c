package core

import (
	"encoding/json"
)

// providerEnvelope mirrors the success envelope of the Messages API. Only the
// completion text is of interest here.
type providerEnvelope struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// ParseCompletion turns the provider's raw response envelope into a Record.
//
// The completion text must be exactly a JSON object: the prompt instructs the
// model to emit nothing else, and a completion that breaks that contract is
// reported rather than repaired. Individual fields are not validated; keys
// the model omits stay absent in the record.
func ParseCompletion(raw []byte) (Record, error) {
	var env providerEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ParseError{
			Kind:    ParseEmptyCompletion,
			Details: "failed to decode provider response envelope: " + err.Error(),
			Raw:     raw,
		}
	}

	if len(env.Content) == 0 || env.Content[0].Text == "" {
		return nil, &ParseError{
			Kind:    ParseEmptyCompletion,
			Details: "no analysis text in response",
			Raw:     raw,
		}
	}

	var record Record
	if err := json.Unmarshal([]byte(env.Content[0].Text), &record); err != nil {
		return nil, &ParseError{
			Kind:    ParseMalformedJSON,
			Details: "invalid JSON format in response: " + err.Error(),
			Raw:     raw,
		}
	}

	return record, nil
}
