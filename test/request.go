package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/centavo-app/backend/internal/router"
	"github.com/stretchr/testify/assert"
)

// TestUserID is the user the test requests act as, unless the
// X-User-ID header is overridden.
const TestUserID = "ada9f63a-2c69-4678-b5a6-5cf368a00b32"

// Request is a helper method to simplify making a HTTP request for tests.
func Request(t *testing.T, method, url string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer

	// If the body is a string, convert it to bytes
	if reflect.TypeOf(body).Kind() == reflect.String {
		byteBuffer = bytes.NewBufferString(body.(string))
	} else if reflect.TypeOf(body).Kind() == reflect.Struct || reflect.TypeOf(body).Kind() == reflect.Map {
		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.Fail(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	} else {
		// Assume we got sent a *bytes.Buffer for e.g. a file
		byteBuffer = body.(*bytes.Buffer)
	}

	r, err := router.Router()
	if err != nil {
		assert.FailNow(t, "Router could not be initialized")
	}

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, byteBuffer)
	req.Header.Set("X-User-ID", TestUserID)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// AnonymousRequest makes a request without a session.
func AnonymousRequest(t *testing.T, method, url string, body any) httptest.ResponseRecorder {
	return Request(t, method, url, body, map[string]string{"X-User-ID": ""})
}

// DecodeError returns the error string of an error response body.
func DecodeError(t *testing.T, s []byte) string {
	var r struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(s, &r); err != nil {
		assert.Fail(t, "Not valid JSON!", "%s", s)
	}

	return r.Error
}
