package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrTransport wraps every failure to reach the backend at all.
var ErrTransport = errors.New("api transport error")

// APIError is a non-2xx response. Detail comes from {"detail"}, {"message"}
// or the raw body, whichever the endpoint returned.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
}

// Message is what the UI shows for err.
func Message(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		return apiErr.Detail
	case errors.As(err, &apiErr):
		return fmt.Sprintf("Request failed (%d)", apiErr.Status)
	case errors.Is(err, ErrTransport):
		return "Could not reach the server. Please try again."
	default:
		return err.Error()
	}
}

const maxDetail = 300

func parseDetail(body []byte) string {
	var v struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &v); err == nil {
		if d := rawDetail(v.Detail); d != "" {
			return d
		}
		if v.Message != "" {
			return v.Message
		}
	}
	s := strings.TrimSpace(string(body))
	if utf8.RuneCountInString(s) > maxDetail {
		s = string([]rune(s)[:maxDetail])
	}
	return s
}

// rawDetail accepts both a plain string and the list-of-objects form some
// validation errors use.
func rawDetail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, it := range list {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(raw)
}
