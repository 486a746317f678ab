package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func TestIDTokenVerifierReadsEmailVerified(t *testing.T) {
	cases := []struct {
		name  string
		claim interface{}
		want  bool
	}{
		{"bool true", true, true},
		{"string true", "true", true},
		{"false", false, false},
		{"missing", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims := map[string]interface{}{"email": "ann@example.com", "name": "Ann"}
			if tc.claim != nil {
				claims["email_verified"] = tc.claim
			}
			v := &IDTokenVerifier{clientID: "client", validate: func(_ context.Context, _, audience string) (*idtoken.Payload, error) {
				assert.Equal(t, "client", audience)
				return &idtoken.Payload{Subject: "sub-1", Claims: claims}, nil
			}}

			p, err := v.Verify(context.Background(), "tok")
			require.NoError(t, err)
			assert.Equal(t, "sub-1", p.Subject)
			assert.Equal(t, tc.want, p.EmailVerified)
		})
	}
}

func TestGoogleOAuthExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/token":
			_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600}`))
		case "/userinfo":
			assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":"sub-2","email":"bob@example.com","verified_email":true,"name":"Bob"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	g := NewGoogleOAuth("client", "secret", "http://localhost/callback")
	g.config.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	g.userInfoURL = srv.URL + "/userinfo"

	p, err := g.Exchange(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, &GoogleProfile{Subject: "sub-2", Email: "bob@example.com", EmailVerified: true, Name: "Bob"}, p)
}
