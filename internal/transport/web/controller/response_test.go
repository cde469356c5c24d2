package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelope_Validate(t *testing.T) {
	data := "payload"

	cases := []struct {
		name    string
		env     Envelope[string]
		wantErr bool
	}{
		{name: "success_with_data", env: Envelope[string]{Success: true, Data: &data}},
		{name: "success_without_data", env: Envelope[string]{Success: true}},
		{name: "success_with_error", env: Envelope[string]{Success: true, Error: "boom"}, wantErr: true},
		{name: "failure_with_error", env: Envelope[string]{Error: "boom"}},
		{name: "failure_without_error", env: Envelope[string]{}, wantErr: true},
		{name: "failure_with_data", env: Envelope[string]{Data: &data, Error: "boom"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.env.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	req := testContext()(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusUnauthorized, "Not authenticated")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"Not authenticated"}`, rec.Body.String())
}

func TestWriteError_EmptyMessageBecomesServerError(t *testing.T) {
	req := testContext()(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusNotFound, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal Server Error"}`, rec.Body.String())
}
