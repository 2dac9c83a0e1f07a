package googleauth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "test-client-id.apps.googleusercontent.com"

// testSigner bundles a throwaway RSA key with an httptest server that serves
// it in Google's cert-map format.
type testSigner struct {
	key    *rsa.PrivateKey
	kid    string
	server *httptest.Server
}

func newTestSigner(t *testing.T) *testSigner {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test signing cert"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)
	pemCert := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})

	kid := "test-key-1"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{kid: string(pemCert)})
	}))
	t.Cleanup(server.Close)

	return &testSigner{key: key, kid: kid, server: server}
}

func (s *testSigner) sign(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.kid
	signed, err := token.SignedString(s.key)
	require.NoError(t, err)
	return signed
}

func validClaims() idTokenClaims {
	return idTokenClaims{
		Email:      "carol@example.com",
		GivenName:  "Carol",
		FamilyName: "Jones",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://accounts.google.com",
			Audience:  jwt.ClaimStrings{testClientID},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestVerifyValidToken(t *testing.T) {
	signer := newTestSigner(t)
	verifier := NewVerifier(testClientID, signer.server.URL)

	claims, err := verifier.Verify(context.Background(), signer.sign(t, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", claims.Email)
	assert.Equal(t, "Carol", claims.GivenName)
	assert.Equal(t, "Jones", claims.FamilyName)
}

func TestVerifyAcceptsBareIssuer(t *testing.T) {
	signer := newTestSigner(t)
	verifier := NewVerifier(testClientID, signer.server.URL)

	c := validClaims()
	c.Issuer = "accounts.google.com"
	_, err := verifier.Verify(context.Background(), signer.sign(t, c))
	assert.NoError(t, err)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	signer := newTestSigner(t)
	verifier := NewVerifier(testClientID, signer.server.URL)

	c := validClaims()
	c.Audience = jwt.ClaimStrings{"someone-else"}
	_, err := verifier.Verify(context.Background(), signer.sign(t, c))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audience")
}

func TestVerifyRejectsMissingAudience(t *testing.T) {
	signer := newTestSigner(t)
	verifier := NewVerifier(testClientID, signer.server.URL)

	c := validClaims()
	c.Audience = nil
	_, err := verifier.Verify(context.Background(), signer.sign(t, c))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audience")
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer := newTestSigner(t)
	verifier := NewVerifier(testClientID, signer.server.URL)

	c := validClaims()
	c.Issuer = "https://evil.example.com"
	_, err := verifier.Verify(context.Background(), signer.sign(t, c))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issuer")
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer := newTestSigner(t)
	verifier := NewVerifier(testClientID, signer.server.URL)

	c := validClaims()
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err := verifier.Verify(context.Background(), signer.sign(t, c))
	assert.Error(t, err)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	signer := newTestSigner(t)
	verifier := NewVerifier(testClientID, signer.server.URL)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims())
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), unsigned)
	assert.Error(t, err)
}

func TestVerifyRejectsUnknownKeyID(t *testing.T) {
	signer := newTestSigner(t)
	verifier := NewVerifier(testClientID, signer.server.URL)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims())
	token.Header["kid"] = "not-in-the-cert-map"
	signed, err := token.SignedString(signer.key)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), signed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no signing certificate")
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer := newTestSigner(t)
	verifier := NewVerifier(testClientID, signer.server.URL)

	_, err := verifier.Verify(context.Background(), "not.a.token")
	assert.Error(t, err)
}
