package base64

import (
	enc "encoding/base64"
	"fmt"
	"strings"
)

// GetContentType extracts the mime type from a data URI, e.g.
// "data:image/png;base64,...." yields "image/png".
func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode strips the data URI prefix and decodes the base64 payload.
func Decode(file string) ([]byte, error) {
	idx := strings.Index(file, ";base64,")
	if idx == -1 {
		return nil, fmt.Errorf("not a base64 data URI")
	}

	payload := file[idx+len(";base64,"):]

	data, err := enc.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return data, nil
}
