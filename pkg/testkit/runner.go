package testkit

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Run loads the scenarios in path and fires each one at handler, in order,
// as a subtest.
func Run(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	scenarios, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			RunScenario(t, handler, s)
		})
	}
}

// RunScenario fires one scenario and asserts its status and body.
func RunScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	req := httptest.NewRequest(s.RequestMethod, s.RequestURL, bytes.NewReader(s.RequestBody))
	if len(s.RequestBody) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)
	AssertJSONSubset(t, s, s.ExpectedBody, rec.Body.Bytes())
}
