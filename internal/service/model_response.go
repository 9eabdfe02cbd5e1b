package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"alexandria-server/internal/domain"
)

// extractJSONObject decodes the first JSON object that starts at the first
// '{' in reply. The decoder tracks string literals, so braces inside
// translated text do not end the object early. Anything that is not a single
// well-formed object is ErrInvalidModelResponse.
func extractJSONObject(reply string) (json.RawMessage, error) {
	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON object in reply", domain.ErrInvalidModelResponse)
	}

	dec := json.NewDecoder(strings.NewReader(reply[start:]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidModelResponse, err)
	}
	return raw, nil
}

// parseStringObject requires the object to have exactly the given keys, each
// holding a JSON string.
func parseStringObject(reply string, keys ...string) (map[string]string, error) {
	raw, err := extractJSONObject(reply)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidModelResponse, err)
	}

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		value, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", domain.ErrInvalidModelResponse, key)
		}
		trimmed := bytes.TrimSpace(value)
		if len(trimmed) == 0 || trimmed[0] != '"' {
			return nil, fmt.Errorf("%w: field %q is not a string", domain.ErrInvalidModelResponse, key)
		}
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", domain.ErrInvalidModelResponse, key, err)
		}
		out[key] = s
	}
	if len(fields) != len(keys) {
		for key := range fields {
			if _, ok := out[key]; !ok {
				return nil, fmt.Errorf("%w: unexpected field %q", domain.ErrInvalidModelResponse, key)
			}
		}
	}

	return out, nil
}

func parseTextDetection(reply string) (*domain.TextDetection, error) {
	fields, err := parseStringObject(reply, "language", "isoCode", "translation")
	if err != nil {
		return nil, err
	}
	return &domain.TextDetection{
		Language:    fields["language"],
		ISOCode:     fields["isoCode"],
		Translation: fields["translation"],
	}, nil
}

func parseDocumentDetection(reply string) (*domain.DocumentDetection, error) {
	fields, err := parseStringObject(reply, "detected_language", "iso_code", "translation_to_english")
	if err != nil {
		return nil, err
	}
	return &domain.DocumentDetection{
		DetectedLanguage:     fields["detected_language"],
		ISOCode:              fields["iso_code"],
		TranslationToEnglish: fields["translation_to_english"],
	}, nil
}

func parseExtractedGraph(reply string) (*domain.ExtractedGraph, error) {
	raw, err := extractJSONObject(reply)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var graph domain.ExtractedGraph
	if err := dec.Decode(&graph); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidModelResponse, err)
	}
	if graph.Nodes == nil {
		return nil, fmt.Errorf("%w: missing field \"nodes\"", domain.ErrInvalidModelResponse)
	}
	for i, n := range graph.Nodes {
		if strings.TrimSpace(n.ID) == "" {
			return nil, fmt.Errorf("%w: node %d has no id", domain.ErrInvalidModelResponse, i)
		}
	}
	for i, rel := range graph.Relationships {
		if strings.TrimSpace(rel.Source) == "" || strings.TrimSpace(rel.Target) == "" {
			return nil, fmt.Errorf("%w: relationship %d is incomplete", domain.ErrInvalidModelResponse, i)
		}
	}
	return &graph, nil
}
