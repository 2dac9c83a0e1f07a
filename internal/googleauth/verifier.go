// Package googleauth verifies Google Sign-In ID tokens against Google's
// published signing certificates.
package googleauth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GoogleCertsURL serves Google's current token-signing certificates as a
// JSON map of key ID to PEM-encoded x509 certificate.
const GoogleCertsURL = "https://www.googleapis.com/oauth2/v1/certs"

const (
	certCacheTTL     = time.Hour
	certFetchTimeout = 10 * time.Second
)

// Claims are the identity claims extracted from a verified ID token.
type Claims struct {
	Email      string
	GivenName  string
	FamilyName string
}

// Verifier validates a Google ID token and returns its identity claims.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Claims, error)
}

// idTokenClaims mirrors the subset of Google's ID token payload we consume.
type idTokenClaims struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	jwt.RegisteredClaims
}

// certVerifier implements Verifier using RS256 signature checks against a
// cached copy of Google's certificate map.
type certVerifier struct {
	clientID   string
	certsURL   string
	httpClient *http.Client

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewVerifier creates a Verifier expecting tokens issued to the given OAuth
// client ID. certsURL may be empty to use Google's endpoint.
func NewVerifier(clientID, certsURL string) Verifier {
	if certsURL == "" {
		certsURL = GoogleCertsURL
	}
	return &certVerifier{
		clientID:   clientID,
		certsURL:   certsURL,
		httpClient: &http.Client{Timeout: certFetchTimeout},
	}
}

// Verify parses the token, checks its RS256 signature against the signing
// certificates, and validates expiry, audience and issuer. The returned
// error describes the underlying verification failure and never echoes the
// token itself.
func (v *certVerifier) Verify(ctx context.Context, idToken string) (*Claims, error) {
	claims := &idTokenClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no key ID")
		}
		return v.signingKey(ctx, kid)
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token failed validation")
	}

	if !claims.VerifyAudience(v.clientID, true) {
		return nil, fmt.Errorf("unexpected audience %v", claims.Audience)
	}

	// Google issues tokens under either issuer form.
	if iss := claims.Issuer; iss != "accounts.google.com" && iss != "https://accounts.google.com" {
		return nil, fmt.Errorf("unexpected issuer %q", iss)
	}

	return &Claims{
		Email:      claims.Email,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
	}, nil
}

// signingKey returns the public key for the given key ID, refreshing the
// cached certificate map when it is stale or does not know the key.
func (v *certVerifier) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.fetchedAt) < certCacheTTL {
		return key, nil
	}

	keys, err := v.fetchCerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching signing certificates: %w", err)
	}
	v.keys = keys
	v.fetchedAt = time.Now()

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no signing certificate for key ID %q", kid)
	}
	return key, nil
}

func (v *certVerifier) fetchCerts(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("certificate endpoint returned status %d", resp.StatusCode)
	}

	var pemCerts map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&pemCerts); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey, len(pemCerts))
	for kid, pemCert := range pemCerts {
		block, _ := pem.Decode([]byte(pemCert))
		if block == nil {
			return nil, fmt.Errorf("certificate for key ID %q is not PEM", kid)
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing certificate for key ID %q: %w", kid, err)
		}
		rsaKey, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("certificate for key ID %q is not RSA", kid)
		}
		keys[kid] = rsaKey
	}
	return keys, nil
}
