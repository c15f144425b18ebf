package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var ErrNoJSON = errors.New("llm: response contains no JSON document")

// DecodeJSON pulls the outermost JSON object out of a model response and
// unmarshals it into v. Models regularly wrap answers in prose or code fences,
// or leave trailing commas; the document is repaired before giving up.
func DecodeJSON(response string, v interface{}) error {
	doc := extractJSON(response)
	if doc == "" {
		return ErrNoJSON
	}

	if err := json.Unmarshal([]byte(doc), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(doc)
	if err != nil {
		return fmt.Errorf("repair json: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("json unmarshal failed: %w", err)
	}
	return nil
}

func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	closeCh := "}"
	startIdx := strings.Index(response, "{")
	if arr := strings.Index(response, "["); arr != -1 && (startIdx == -1 || arr < startIdx) {
		closeCh = "]"
		startIdx = arr
	}
	if startIdx == -1 {
		return ""
	}

	endIdx := strings.LastIndex(response, closeCh)
	if endIdx <= startIdx {
		// Truncated output; let the repairer close it.
		return response[startIdx:]
	}
	return response[startIdx : endIdx+1]
}
