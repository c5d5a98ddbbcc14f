package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents API failure response
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Detail)
}

// IsUnauthorized returns true if err is API rejection of credential
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized, http.StatusForbidden)
}

// IsBadRequest returns true if err is API rejection of request data (e.g. duplicate email)
func IsBadRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity)
}

func hasStatus(err error, codes ...int) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Loc []interface{} `json:"loc"`
	Msg string        `json:"msg"`
}

// newError creates error from response body, detail is either string or validation list
func newError(statusCode int, body []byte) *Error {
	ret := &Error{StatusCode: statusCode}
	payload := errorBody{}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		ret.Detail = strings.TrimSpace(string(body))
		return ret
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		ret.Detail = detail
		return ret
	}
	var items []validationItem
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		var messages []string
		for _, item := range items {
			var loc []string
			for _, part := range item.Loc {
				loc = append(loc, fmt.Sprint(part))
			}
			messages = append(messages, strings.Join(loc, ".")+": "+item.Msg)
		}
		ret.Detail = strings.Join(messages, "; ")
		return ret
	}
	ret.Detail = string(payload.Detail)
	return ret
}
