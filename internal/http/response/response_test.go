package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"bad request", apierr.BadRequest("invalid_content", "content is required"), http.StatusBadRequest, "invalid_content", "content is required"},
		{"not found", apierr.NotFound("journal entry"), http.StatusNotFound, "not_found", "journal entry not found"},
		{"internal hides cause", apierr.Internal(errors.New("dial tcp: refused")), http.StatusInternalServerError, "internal_error", "internal error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error", "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAPIError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: expected %d, got %d", tc.wantStatus, rec.Code)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.wantCode || env.Error.Message != tc.wantMessage {
				t.Fatalf("envelope: got %+v", env.Error)
			}
		})
	}
}
