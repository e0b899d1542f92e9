package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorHelpersWriteBusinessCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		fn   func(*gin.Context, string)
		code int
	}{
		{"bad_request", BadRequest, CodeBadRequest},
		{"unauthorized", Unauthorized, CodeUnauthorized},
		{"forbidden", Forbidden, CodeForbidden},
		{"not_found", NotFound, CodeNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		tc.fn(c, "denied")

		if w.Code != http.StatusOK {
			t.Fatalf("%s: http status want 200 got %d", tc.name, w.Code)
		}
		var resp Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode failed: %v", tc.name, err)
		}
		if resp.StatusCode != tc.code {
			t.Fatalf("%s: business code want %d got %d", tc.name, tc.code, resp.StatusCode)
		}
		if resp.Msg != "denied" {
			t.Fatalf("%s: msg want denied got %q", tc.name, resp.Msg)
		}
	}
}
