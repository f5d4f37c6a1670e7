package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintai-system/attendance-api/internal/domain"
)

const testSecret = "test-secret-key"

var fixedNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestCodec(t *testing.T, now time.Time, opts ...CodecOption) *TokenCodec {
	t.Helper()
	opts = append([]CodecOption{WithClock(func() time.Time { return now })}, opts...)
	codec, err := NewTokenCodec(testSecret, "HS256", opts...)
	require.NoError(t, err)
	return codec
}

func testClaims(typ domain.TokenType, exp time.Time) *Claims {
	claims := &Claims{
		UserID:         "user_001",
		EmployeeNumber: "1000001",
		Type:           typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   "user_001",
			IssuedAt:  jwt.NewNumericDate(fixedNow),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	if typ == domain.TokenTypeAccess {
		claims.Role = domain.RoleGeneral
	}
	return claims
}

func TestNewTokenCodecRejectsBadConfig(t *testing.T) {
	_, err := NewTokenCodec("", "HS256")
	assert.Error(t, err)

	for _, alg := range []string{"RS256", "ES256", "none", "XYZ", ""} {
		_, err := NewTokenCodec(testSecret, alg)
		assert.Error(t, err, alg)
	}

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		codec, err := NewTokenCodec(testSecret, alg)
		require.NoError(t, err, alg)
		assert.Equal(t, alg, codec.Algorithm())
	}
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := newTestCodec(t, fixedNow)

	for _, typ := range []domain.TokenType{domain.TokenTypeAccess, domain.TokenTypeRefresh} {
		t.Run(string(typ), func(t *testing.T) {
			want := testClaims(typ, fixedNow.Add(time.Hour))

			token, err := codec.Encode(want)
			require.NoError(t, err)
			assert.Equal(t, 2, strings.Count(token, "."))

			got, err := codec.Decode(token)
			require.NoError(t, err)

			assert.Equal(t, want.UserID, got.UserID)
			assert.Equal(t, want.EmployeeNumber, got.EmployeeNumber)
			assert.Equal(t, want.Role, got.Role)
			assert.Equal(t, want.Type, got.Type)
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Subject, got.Subject)
			assert.Equal(t, want.IssuedAt.Unix(), got.IssuedAt.Unix())
			assert.Equal(t, want.ExpiresAt.Unix(), got.ExpiresAt.Unix())
		})
	}
}

func TestTokenCodecRefreshClaimsOmitRole(t *testing.T) {
	codec := newTestCodec(t, fixedNow)
	token, err := codec.Encode(testClaims(domain.TokenTypeRefresh, fixedNow.Add(time.Hour)))
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	payload := parsed.Claims.(jwt.MapClaims)
	assert.NotContains(t, payload, "role")
	assert.Equal(t, "refresh", payload["type"])
	assert.Equal(t, "1000001", payload["employee_number"])
	assert.Equal(t, "user_001", payload["user_id"])
}

func TestTokenCodecExpiryBoundary(t *testing.T) {
	issuer := newTestCodec(t, fixedNow)
	verifier := newTestCodec(t, fixedNow)

	tests := []struct {
		name    string
		exp     time.Time
		wantErr error
	}{
		{name: "one second past expiry", exp: fixedNow.Add(-time.Second), wantErr: ErrTokenExpired},
		{name: "exactly at expiry", exp: fixedNow, wantErr: ErrTokenExpired},
		{name: "one second before expiry", exp: fixedNow.Add(time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := issuer.Encode(testClaims(domain.TokenTypeAccess, tt.exp))
			require.NoError(t, err)

			_, err = verifier.Decode(token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTokenCodecLeeway(t *testing.T) {
	codec := newTestCodec(t, fixedNow, WithLeeway(5*time.Second))
	token, err := codec.Encode(testClaims(domain.TokenTypeAccess, fixedNow.Add(-2*time.Second)))
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.NoError(t, err)
}

func TestTokenCodecTamperedSignature(t *testing.T) {
	codec := newTestCodec(t, fixedNow)
	token, err := codec.Encode(testClaims(domain.TokenTypeAccess, fixedNow.Add(time.Hour)))
	require.NoError(t, err)

	sigStart := strings.LastIndex(token, ".") + 1
	for i := sigStart; i < len(token); i++ {
		for _, replacement := range []byte{'A', 'z', '*'} {
			if token[i] == replacement {
				continue
			}
			tampered := []byte(token)
			tampered[i] = replacement

			_, err := codec.Decode(string(tampered))
			require.ErrorIs(t, err, ErrSignatureInvalid, "position %d replacement %q", i-sigStart, replacement)
		}
	}
}

func TestTokenCodecTamperedPayload(t *testing.T) {
	codec := newTestCodec(t, fixedNow)
	token, err := codec.Encode(testClaims(domain.TokenTypeAccess, fixedNow.Add(time.Hour)))
	require.NoError(t, err)

	other := testClaims(domain.TokenTypeAccess, fixedNow.Add(time.Hour))
	other.Role = domain.RoleAdmin
	forged, err := codec.Encode(other)
	require.NoError(t, err)

	// Splice the admin payload onto the original signature.
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = codec.Decode(spliced)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestTokenCodecWrongKeyOrAlgorithm(t *testing.T) {
	verifier := newTestCodec(t, fixedNow)
	claims := testClaims(domain.TokenTypeAccess, fixedNow.Add(time.Hour))

	otherKey, err := NewTokenCodec("another-secret", "HS256")
	require.NoError(t, err)
	token, err := otherKey.Encode(claims)
	require.NoError(t, err)
	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, ErrSignatureInvalid)

	otherAlg, err := NewTokenCodec(testSecret, "HS512")
	require.NoError(t, err)
	token, err = otherAlg.Encode(claims)
	require.NoError(t, err)
	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, ErrSignatureInvalid)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = verifier.Decode(unsigned)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestTokenCodecMalformed(t *testing.T) {
	codec := newTestCodec(t, fixedNow)

	noExp := testClaims(domain.TokenTypeAccess, fixedNow)
	noExp.ExpiresAt = nil
	noExpToken, err := codec.Encode(noExp)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "random string", token: "not-a-token"},
		{name: "two segments", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid"},
		{name: "four segments", token: "a.b.c.d"},
		{name: "garbage payload", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.!!!.c2ln"},
		{name: "missing expiry", token: noExpToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			assert.ErrorIs(t, err, ErrTokenMalformed)
			assert.True(t, IsTokenError(err))
		})
	}
}
