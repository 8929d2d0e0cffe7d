package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := tok.SignedString(key)
	require.NoError(t, err)
	return signed
}

func adminClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  sub,
		"role": "admin",
		"iss":  TokenIssuer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var gotUserID string
	handler := AdminAuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(ContextKeyUserID).(string)
		w.WriteHeader(http.StatusOK)
	}))

	expired := adminClaims("admin-1")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	wrongIssuer := adminClaims("admin-1")
	wrongIssuer["iss"] = "SomeoneElse"

	tenantRole := adminClaims("tenant-1")
	tenantRole["role"] = "tenant"

	noSubject := jwt.MapClaims{
		"role": "admin",
		"iss":  TokenIssuer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid admin token", "Bearer " + signToken(t, key, adminClaims("admin-1")), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer scheme", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong signing key", "Bearer " + signToken(t, otherKey, adminClaims("admin-1")), http.StatusUnauthorized},
		{"expired token", "Bearer " + signToken(t, key, expired), http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + signToken(t, key, wrongIssuer), http.StatusUnauthorized},
		{"non-admin role", "Bearer " + signToken(t, key, tenantRole), http.StatusForbidden},
		{"missing subject", "Bearer " + signToken(t, key, noSubject), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/properties", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				require.Equal(t, "admin-1", gotUserID)
			} else {
				require.Empty(t, gotUserID)
			}
		})
	}
}

func TestValidateTokenRejectsHMAC(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims("admin-1"))
	signed, err := tok.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, vErr := ValidateToken(signed, &key.PublicKey)
	require.Error(t, vErr)
}
