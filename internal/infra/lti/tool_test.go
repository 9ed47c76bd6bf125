package lti

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"marvel-tutor/internal/config"
	"marvel-tutor/internal/domain"
	"marvel-tutor/internal/domain/model"
)

type memStateStore struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemStateStore() *memStateStore { return &memStateStore{m: map[string]string{}} }

func (s *memStateStore) Save(ctx context.Context, state, nonce string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[state] = nonce
	return nil
}

func (s *memStateStore) Consume(ctx context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.m[state]
	if !ok {
		return "", domain.ErrNotFound
	}
	delete(s.m, state)
	return n, nil
}

// platformFixture is a fake LMS: an RSA key pair plus an httptest server
// publishing its public half as a JWKS.
type platformFixture struct {
	key    *rsa.PrivateKey
	kid    string
	server *httptest.Server
}

func newPlatformFixture(t *testing.T) *platformFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	p := &platformFixture{key: key, kid: "platform-key-1"}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		set := JWKS{Keys: []JWK{{
			Kty: "RSA",
			Use: "sig",
			Alg: "RS256",
			Kid: p.kid,
			N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}}}
		_ = json.NewEncoder(w).Encode(set)
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *platformFixture) sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = p.kid
	signed, err := tok.SignedString(p.key)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func testConfig(platformJWKS string) config.LTIConfig {
	return config.LTIConfig{
		Issuer:          "https://lms.example.edu",
		ClientID:        "client-1",
		DeploymentID:    "dep-1",
		AuthLoginURL:    "https://lms.example.edu/auth",
		PlatformJWKSURL: platformJWKS,
		ToolRedirectURI: "https://tool.example.edu/lti/launch",
	}
}

func launchClaims(nonce string) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   "https://lms.example.edu",
		"aud":   "client-1",
		"sub":   "lms-user-1",
		"name":  "Ana García",
		"nonce": nonce,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Minute).Unix(),
		claimDeploymentID: "dep-1",
		claimContext: map[string]any{
			"id":    "course-42",
			"title": "Español B1",
		},
		claimRoles: []any{
			"http://purl.imsglobal.org/vocab/lis/v2/membership#Learner",
		},
	}
}

func TestLoginRedirectURL(t *testing.T) {
	states := newMemStateStore()
	tool, err := NewTool(testConfig(""), states)
	if err != nil {
		t.Fatal(err)
	}

	target, err := tool.LoginRedirectURL(context.Background(), "hint-1", "msg-1")
	if err != nil {
		t.Fatal(err)
	}
	u, err := url.Parse(target)
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if q.Get("scope") != "openid" || q.Get("response_type") != "id_token" ||
		q.Get("response_mode") != "form_post" || q.Get("prompt") != "none" {
		t.Fatalf("oidc params wrong: %s", target)
	}
	if q.Get("client_id") != "client-1" || q.Get("redirect_uri") != "https://tool.example.edu/lti/launch" {
		t.Fatalf("client params wrong: %s", target)
	}
	if q.Get("login_hint") != "hint-1" || q.Get("lti_message_hint") != "msg-1" {
		t.Fatalf("hints not echoed: %s", target)
	}

	// State and nonce are bound for the launch to consume.
	nonce, err := states.Consume(context.Background(), q.Get("state"))
	if err != nil {
		t.Fatalf("state not stored: %v", err)
	}
	if nonce != q.Get("nonce") {
		t.Fatal("stored nonce differs from the redirect nonce")
	}
}

func TestValidateLaunch(t *testing.T) {
	platform := newPlatformFixture(t)
	ctx := context.Background()

	newTool := func(t *testing.T) (*Tool, *memStateStore) {
		states := newMemStateStore()
		tool, err := NewTool(testConfig(platform.server.URL), states)
		if err != nil {
			t.Fatal(err)
		}
		return tool, states
	}

	t.Run("valid launch", func(t *testing.T) {
		tool, states := newTool(t)
		_ = states.Save(ctx, "st", "n-1")

		launch, err := tool.ValidateLaunch(ctx, "st", platform.sign(t, launchClaims("n-1")))
		if err != nil {
			t.Fatalf("ValidateLaunch: %v", err)
		}
		if launch.LMSUserID != "lms-user-1" || launch.Name != "Ana García" {
			t.Fatalf("identity wrong: %+v", launch)
		}
		if launch.LMSCourseID != "course-42" || launch.CourseTitle != "Español B1" {
			t.Fatalf("course wrong: %+v", launch)
		}
		if launch.Role != model.RoleLearner {
			t.Fatalf("role = %s", launch.Role)
		}
	})

	t.Run("instructor role", func(t *testing.T) {
		tool, states := newTool(t)
		_ = states.Save(ctx, "st", "n-1")
		claims := launchClaims("n-1")
		claims[claimRoles] = []any{"http://purl.imsglobal.org/vocab/lis/v2/membership#Instructor"}

		launch, err := tool.ValidateLaunch(ctx, "st", platform.sign(t, claims))
		if err != nil {
			t.Fatal(err)
		}
		if launch.Role != model.RoleInstructor {
			t.Fatalf("role = %s", launch.Role)
		}
	})

	t.Run("unknown state", func(t *testing.T) {
		tool, _ := newTool(t)
		_, err := tool.ValidateLaunch(ctx, "never-saved", platform.sign(t, launchClaims("n")))
		if !errors.Is(err, domain.ErrLaunchInvalid) {
			t.Fatalf("want ErrLaunchInvalid, got %v", err)
		}
	})

	t.Run("state is single use", func(t *testing.T) {
		tool, states := newTool(t)
		_ = states.Save(ctx, "st", "n-1")
		token := platform.sign(t, launchClaims("n-1"))

		if _, err := tool.ValidateLaunch(ctx, "st", token); err != nil {
			t.Fatal(err)
		}
		if _, err := tool.ValidateLaunch(ctx, "st", token); !errors.Is(err, domain.ErrLaunchInvalid) {
			t.Fatalf("replayed state accepted: %v", err)
		}
	})

	t.Run("nonce mismatch", func(t *testing.T) {
		tool, states := newTool(t)
		_ = states.Save(ctx, "st", "expected-nonce")
		_, err := tool.ValidateLaunch(ctx, "st", platform.sign(t, launchClaims("other-nonce")))
		if !errors.Is(err, domain.ErrLaunchInvalid) {
			t.Fatalf("want ErrLaunchInvalid, got %v", err)
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tool, states := newTool(t)
		_ = states.Save(ctx, "st", "n-1")
		claims := launchClaims("n-1")
		claims["iss"] = "https://rogue.example.com"
		if _, err := tool.ValidateLaunch(ctx, "st", platform.sign(t, claims)); !errors.Is(err, domain.ErrLaunchInvalid) {
			t.Fatalf("want ErrLaunchInvalid, got %v", err)
		}
	})

	t.Run("wrong deployment", func(t *testing.T) {
		tool, states := newTool(t)
		_ = states.Save(ctx, "st", "n-1")
		claims := launchClaims("n-1")
		claims[claimDeploymentID] = "dep-other"
		if _, err := tool.ValidateLaunch(ctx, "st", platform.sign(t, claims)); !errors.Is(err, domain.ErrLaunchInvalid) {
			t.Fatalf("want ErrLaunchInvalid, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		tool, states := newTool(t)
		_ = states.Save(ctx, "st", "n-1")
		claims := launchClaims("n-1")
		claims["exp"] = time.Now().Add(-time.Minute).Unix()
		if _, err := tool.ValidateLaunch(ctx, "st", platform.sign(t, claims)); !errors.Is(err, domain.ErrLaunchInvalid) {
			t.Fatalf("want ErrLaunchInvalid, got %v", err)
		}
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		tool, states := newTool(t)
		_ = states.Save(ctx, "st", "n-1")
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, launchClaims("n-1"))
		raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tool.ValidateLaunch(ctx, "st", raw); !errors.Is(err, domain.ErrLaunchInvalid) {
			t.Fatalf("alg=none accepted: %v", err)
		}
	})

	t.Run("missing context falls back", func(t *testing.T) {
		tool, states := newTool(t)
		_ = states.Save(ctx, "st", "n-1")
		claims := launchClaims("n-1")
		delete(claims, claimContext)
		delete(claims, "name")

		launch, err := tool.ValidateLaunch(ctx, "st", platform.sign(t, claims))
		if err != nil {
			t.Fatal(err)
		}
		if launch.LMSCourseID != "course" || launch.Name != "Student" {
			t.Fatalf("defaults not applied: %+v", launch)
		}
	})
}

func TestPublicJWKS(t *testing.T) {
	t.Run("no key configured", func(t *testing.T) {
		tool, err := NewTool(testConfig(""), newMemStateStore())
		if err != nil {
			t.Fatal(err)
		}
		set := tool.PublicJWKS()
		if set.Keys == nil || len(set.Keys) != 0 {
			t.Fatalf("want empty keys array, got %+v", set.Keys)
		}
	})

	t.Run("configured key published", func(t *testing.T) {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatal(err)
		}
		pemPath := filepath.Join(t.TempDir(), "tool.pem")
		pemBytes := pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(key),
		})
		if err := os.WriteFile(pemPath, pemBytes, 0o600); err != nil {
			t.Fatal(err)
		}

		cfg := testConfig("")
		cfg.PrivateKeyPEMPath = pemPath
		tool, err := NewTool(cfg, newMemStateStore())
		if err != nil {
			t.Fatal(err)
		}

		set := tool.PublicJWKS()
		if len(set.Keys) != 1 {
			t.Fatalf("got %d keys", len(set.Keys))
		}
		k := set.Keys[0]
		if k.Kty != "RSA" || k.Alg != "RS256" || k.Use != "sig" {
			t.Fatalf("key metadata wrong: %+v", k)
		}
		if k.Kid == "" || len(k.Kid) != 16 {
			t.Fatalf("kid = %q", k.Kid)
		}

		// The published modulus is the key we loaded.
		pub, err := k.publicKey()
		if err != nil {
			t.Fatal(err)
		}
		if pub.N.Cmp(key.PublicKey.N) != 0 || pub.E != key.PublicKey.E {
			t.Fatal("published key differs from the configured key")
		}
	})

	t.Run("bad pem path fails construction", func(t *testing.T) {
		cfg := testConfig("")
		cfg.PrivateKeyPEMPath = filepath.Join(t.TempDir(), "missing.pem")
		if _, err := NewTool(cfg, newMemStateStore()); err == nil {
			t.Fatal("missing key file accepted")
		}
	})
}

func TestPlatformKeysetRefreshOnRotation(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	var mu sync.Mutex
	kid := "gen-1"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		current := kid
		mu.Unlock()
		set := JWKS{Keys: []JWK{{
			Kty: "RSA",
			Kid: current,
			N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}}}
		_ = json.NewEncoder(w).Encode(set)
	}))
	defer server.Close()

	ks := newPlatformKeyset(server.URL)
	ctx := context.Background()

	if _, err := ks.Key(ctx, "gen-1"); err != nil {
		t.Fatalf("initial fetch: %v", err)
	}

	// Rotate. The cached set lacks gen-2; the refetch guard blocks an
	// immediate refresh, so backdate the fetch time as if a minute passed.
	mu.Lock()
	kid = "gen-2"
	mu.Unlock()
	ks.mu.Lock()
	ks.fetched = time.Now().Add(-2 * time.Minute)
	ks.mu.Unlock()

	if _, err := ks.Key(ctx, "gen-2"); err != nil {
		t.Fatalf("post-rotation fetch: %v", err)
	}
	if _, err := ks.Key(ctx, "gen-1"); err == nil {
		t.Fatal("retired kid still resolves")
	}
}
