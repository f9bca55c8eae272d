package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

const (
	testSubjectID = "7f1d2b7a-8c43-4a0e-9d6b-0f2c1e5a9b31"
	otherUserID   = "c2f9a3e4-1b5d-4f7e-8a6c-3d2e1f0a9b8c"
	testCardID    = "5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c1d"
)

// withCaller stands in for the auth middleware.
func withCaller(subjectID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if subjectID != "" {
				r = r.WithContext(shared.WithUserID(r.Context(), subjectID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// serve routes a single request through a chi router so URL params resolve.
func serve(
	t *testing.T,
	method, pattern, target string,
	handler http.HandlerFunc,
	subjectID string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.With(withCaller(subjectID)).MethodFunc(method, pattern, handler)

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

// decodeData unmarshals the "data" envelope into target.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data, "response has no data envelope: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, target))
}
