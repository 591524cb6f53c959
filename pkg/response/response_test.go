package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "created", map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, float64(7), body["data"].(map[string]any)["id"])
}

func TestErrorHelpersDefaultMessages(t *testing.T) {
	cases := []struct {
		write   func(http.ResponseWriter, string)
		code    int
		message string
	}{
		{BadRequest, http.StatusBadRequest, "Bad request"},
		{Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{Forbidden, http.StatusForbidden, "Forbidden"},
		{NotFound, http.StatusNotFound, "Resource not found"},
		{Conflict, http.StatusConflict, "Conflict"},
		{InternalServerError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.write(rec, "")

		assert.Equal(t, tc.code, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.message, body["message"])
	}
}
