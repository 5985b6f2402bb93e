package v1_test

import (
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"time"

	"github.com/stretchr/testify/assert"
)

func timeNowUTC() time.Time {
	return time.Now().In(time.UTC)
}

func (suite *TestSuiteStandard) assertHTTPStatus(r *httptest.ResponseRecorder, expectedStatus ...int) {
	assert.Contains(suite.T(), expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}

// decodeResponse decodes an HTTP response into a target struct.
func (suite *TestSuiteStandard) decodeResponse(r *httptest.ResponseRecorder, target interface{}) {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		assert.FailNow(suite.T(), "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}
