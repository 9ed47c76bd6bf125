// Package lti implements the tool side of an LTI 1.3 launch: the OIDC
// login redirect, id_token validation against the platform JWKS, and
// publication of the tool's own key set.
package lti

import (
	"context"
	"fmt"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"marvel-tutor/internal/config"
	"marvel-tutor/internal/domain"
	"marvel-tutor/internal/domain/model"
)

const (
	claimContext      = "https://purl.imsglobal.org/spec/lti/claim/context"
	claimRoles        = "https://purl.imsglobal.org/spec/lti/claim/roles"
	claimDeploymentID = "https://purl.imsglobal.org/spec/lti/claim/deployment_id"
)

// StateStore is the single-use state-to-nonce binding minted at login.
type StateStore interface {
	Save(ctx context.Context, state, nonce string) error
	Consume(ctx context.Context, state string) (string, error)
}

// LaunchData is what a validated launch resolves to.
type LaunchData struct {
	LMSUserID   string
	Name        string
	LMSCourseID string
	CourseTitle string
	Role        model.UserRole
}

type Tool struct {
	cfg    config.LTIConfig
	states StateStore
	keys   *platformKeyset
	signer *toolKey // nil when no private key is configured
}

func NewTool(cfg config.LTIConfig, states StateStore) (*Tool, error) {
	var signer *toolKey
	if cfg.PrivateKeyPEMPath != "" {
		k, err := loadToolKey(cfg.PrivateKeyPEMPath)
		if err != nil {
			return nil, fmt.Errorf("lti private key: %w", err)
		}
		signer = k
	}
	return &Tool{
		cfg:    cfg,
		states: states,
		keys:   newPlatformKeyset(cfg.PlatformJWKSURL),
		signer: signer,
	}, nil
}

// LoginRedirectURL mints state+nonce and builds the platform OIDC auth
// request. loginHint and messageHint are echoed from the login request.
func (t *Tool) LoginRedirectURL(ctx context.Context, loginHint, messageHint string) (string, error) {
	state := uuid.NewString()
	nonce := uuid.NewString()
	if err := t.states.Save(ctx, state, nonce); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("scope", "openid")
	q.Set("response_type", "id_token")
	q.Set("response_mode", "form_post")
	q.Set("prompt", "none")
	q.Set("client_id", t.cfg.ClientID)
	q.Set("redirect_uri", t.cfg.ToolRedirectURI)
	q.Set("state", state)
	q.Set("nonce", nonce)
	if loginHint != "" {
		q.Set("login_hint", loginHint)
	}
	if messageHint != "" {
		q.Set("lti_message_hint", messageHint)
	}
	return t.cfg.AuthLoginURL + "?" + q.Encode(), nil
}

// ValidateLaunch verifies the posted id_token: signature against the
// platform JWKS, issuer, audience, deployment and the nonce bound to state.
func (t *Tool) ValidateLaunch(ctx context.Context, state, rawIDToken string) (*LaunchData, error) {
	nonce, err := t.states.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown or replayed state", domain.ErrLaunchInvalid)
	}

	token, err := jwt.Parse(rawIDToken,
		func(tok *jwt.Token) (any, error) {
			kid, _ := tok.Header["kid"].(string)
			return t.keys.Key(ctx, kid)
		},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithAudience(t.cfg.ClientID),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrLaunchInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrLaunchInvalid
	}
	if got, _ := claims["nonce"].(string); got != nonce {
		return nil, fmt.Errorf("%w: nonce mismatch", domain.ErrLaunchInvalid)
	}
	if dep, _ := claims[claimDeploymentID].(string); t.cfg.DeploymentID != "" && dep != t.cfg.DeploymentID {
		return nil, fmt.Errorf("%w: unknown deployment %q", domain.ErrLaunchInvalid, dep)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrLaunchInvalid)
	}
	name, _ := claims["name"].(string)
	if name == "" {
		name = "Student"
	}

	courseID, courseTitle := "course", ""
	if m, ok := claims[claimContext].(map[string]any); ok {
		if id, _ := m["id"].(string); id != "" {
			courseID = id
		}
		courseTitle, _ = m["title"].(string)
	}

	var roles []string
	if raw, ok := claims[claimRoles].([]any); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}

	return &LaunchData{
		LMSUserID:   sub,
		Name:        name,
		LMSCourseID: courseID,
		CourseTitle: courseTitle,
		Role:        model.RoleFromClaims(roles),
	}, nil
}
