package core

import (
	"bytes"
	"errors"
	"testing"
)

func parseErrorKind(t *testing.T, err error) ParseErrorKind {
	t.Helper()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return parseErr.Kind
}

func TestParseCompletionEmptyContent(t *testing.T) {
	raw := []byte(`{"content": []}`)

	_, err := ParseCompletion(raw)
	if kind := parseErrorKind(t, err); kind != ParseEmptyCompletion {
		t.Errorf("expected ParseEmptyCompletion, got %v", kind)
	}
}

func TestParseCompletionEmptyText(t *testing.T) {
	raw := []byte(`{"content": [{"text": ""}]}`)

	_, err := ParseCompletion(raw)
	if kind := parseErrorKind(t, err); kind != ParseEmptyCompletion {
		t.Errorf("expected ParseEmptyCompletion, got %v", kind)
	}
}

func TestParseCompletionUndecodableEnvelope(t *testing.T) {
	raw := []byte(`<html>gateway error</html>`)

	_, err := ParseCompletion(raw)
	if kind := parseErrorKind(t, err); kind != ParseEmptyCompletion {
		t.Errorf("expected ParseEmptyCompletion, got %v", kind)
	}
}

func TestParseCompletionMalformedJSON(t *testing.T) {
	raw := []byte(`{"content": [{"text": "not json"}]}`)

	_, err := ParseCompletion(raw)
	if kind := parseErrorKind(t, err); kind != ParseMalformedJSON {
		t.Errorf("expected ParseMalformedJSON, got %v", kind)
	}

	// The raw envelope must travel with the error for diagnosis.
	var parseErr *ParseError
	errors.As(err, &parseErr)
	if !bytes.Equal(parseErr.Raw, raw) {
		t.Error("expected raw provider payload on the parse error")
	}
}

func TestParseCompletionValid(t *testing.T) {
	raw := []byte(`{"content": [{"text": "{\"company_domain\":\"acme.com\",\"linkedin_profile\":\"https://linkedin.com/company/acme\",\"cheat_sheet_bullets\":\"Goal: a|Goal: b\"}"}]}`)

	record, err := ParseCompletion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := record.StringField(FieldCompanyDomain); got != "acme.com" {
		t.Errorf("company_domain = %q", got)
	}
	if got := record.StringField(FieldLinkedinProfile); got != "https://linkedin.com/company/acme" {
		t.Errorf("linkedin_profile = %q", got)
	}
	if got := record.StringField(FieldCheatSheetBullets); got != "Goal: a|Goal: b" {
		t.Errorf("cheat_sheet_bullets = %q", got)
	}
}

func TestParseCompletionToleratesMissingFields(t *testing.T) {
	raw := []byte(`{"content": [{"text": "{\"company_domain\":\"acme.com\"}"}]}`)

	record, err := ParseCompletion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, present := record[FieldLinkedinProfile]; present {
		t.Error("expected absent field to stay absent, not defaulted")
	}
	if got := record.StringField(FieldLinkedinProfile); got != "" {
		t.Errorf("expected empty string for absent field, got %q", got)
	}
}
