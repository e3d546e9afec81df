package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthToken sends the token in the X-Auth-Token header, the scheme
	// Triton services expect.
	AuthToken
	// AuthBearer uses Bearer token authentication.
	AuthBearer
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic
	// AuthCustom uses a custom authentication function.
	AuthCustom
)

// HeaderAuthToken carries the operator token on Triton API requests.
const HeaderAuthToken = "X-Auth-Token"

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the token value (AuthToken, AuthBearer).
	Token string
	// Username is the basic auth username (AuthBasic).
	Username string
	// Password is the basic auth password (AuthBasic).
	Password string
	// Apply is a custom function to modify the request (AuthCustom).
	Apply func(*http.Request)
}

// TokenAuth creates an X-Auth-Token auth config.
func TokenAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthToken, Token: token}
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// CustomAuth creates a custom auth config with a request modifier function.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthToken:
		req.Header.Set(HeaderAuthToken, a.Token)
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(req)
		}
	}
}
