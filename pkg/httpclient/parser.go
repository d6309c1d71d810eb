package httpclient

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseResponse parses the response body into BodyJSON based on content
// type. Dropdown data sources are overwhelmingly JSON; text bodies become
// plain strings and anything binary is wrapped so extraction paths can
// still see a JSON-shaped value.
func ParseResponse(resp *Response) error {
	if len(resp.Body) == 0 {
		return nil
	}

	contentType := strings.ToLower(resp.ContentType)

	switch {
	case strings.Contains(contentType, "application/json"), strings.Contains(contentType, "text/json"):
		return parseJSON(resp)
	case strings.Contains(contentType, "text/"):
		resp.BodyJSON = string(resp.Body)
		return nil
	case contentType == "":
		// Some APIs omit Content-Type; try JSON before giving up.
		if err := parseJSON(resp); err == nil {
			return nil
		}
		resp.BodyJSON = string(resp.Body)
		return nil
	default:
		resp.BodyJSON = map[string]any{
			"_binary":       true,
			"_content_type": resp.ContentType,
			"_base64":       base64.StdEncoding.EncodeToString(resp.Body),
			"_size":         len(resp.Body),
		}
		return nil
	}
}

func parseJSON(resp *Response) error {
	var result any
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	resp.BodyJSON = result
	return nil
}
