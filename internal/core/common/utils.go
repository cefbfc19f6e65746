package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON decodes the outermost JSON object found in an LLM response into T.
// Models often wrap their answer in prose or a markdown fence; everything
// before the first '{' and after the last '}' is ignored.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.IndexByte(response, '{')
	if start == -1 {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}
	end := strings.LastIndexByte(response, '}')
	if end < start {
		return zero, fmt.Errorf("no JSON object found in response (missing '}')")
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, response[start:end+1])
	}
	return result, nil
}
