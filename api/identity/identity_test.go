package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	registerErr error
	user        *dmn.User
}

func (f *fakeAuth) Register(username, password string) error {
	return f.registerErr
}

func (f *fakeAuth) SignIn(username, password string) (*dmn.User, string, error) {
	if f.user == nil || username != f.user.Username {
		return nil, "", service.ErrInvalidCredentials
	}
	return f.user, "token-" + username, nil
}

type fakeTokenizer struct {
	claims map[string]interface{}
}

func (f *fakeTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "", nil
}

func (f *fakeTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return f.claims, nil
}

func post(engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestIdentityServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &fakeAuth{user: &dmn.User{ID: uuid.New(), Username: "walker"}}
	engine := gin.New()
	NewIdentityServer(auth).RegisterPublic(engine.Group("/v1"))

	creds := AuthRequest{Username: "walker", Password: "pw"}

	tests := []struct {
		name        string
		registerErr error
		want        int
	}{
		{name: "Created", want: http.StatusCreated},
		{name: "Taken", registerErr: dmn.ErrUsernameTaken, want: http.StatusConflict},
		{name: "Weak password", registerErr: dmn.ErrWeakPassword, want: http.StatusBadRequest},
		{name: "Store failure", registerErr: errors.New("mongo down"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run("Register "+tt.name, func(t *testing.T) {
			auth.registerErr = tt.registerErr
			w := post(engine, "/v1/auth/register", creds)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	t.Run("Register missing password", func(t *testing.T) {
		w := post(engine, "/v1/auth/register", gin.H{"username": "walker"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login", func(t *testing.T) {
		w := post(engine, "/v1/auth/login", creds)
		require.Equal(t, http.StatusOK, w.Code)

		var res AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, auth.user.ID.String(), res.ID)
		assert.Equal(t, "token-walker", res.Token)
	})

	t.Run("Login wrong user", func(t *testing.T) {
		w := post(engine, "/v1/auth/login", AuthRequest{Username: "runner", Password: "pw"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := uuid.New()
	tokenizer := &fakeTokenizer{claims: map[string]interface{}{"userID": user.String()}}

	engine := gin.New()
	engine.GET("/me", Authorize(tokenizer), func(c *gin.Context) {
		id, err := UserID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "No header", want: http.StatusUnauthorized},
		{name: "Not bearer", header: "Basic good", want: http.StatusUnauthorized},
		{name: "Bad token", header: "Bearer bad", want: http.StatusUnauthorized},
		{name: "Good token", header: "Bearer good", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, user.String(), w.Body.String())
			}
		})
	}

	t.Run("UserID without claims", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		_, err := UserID(c)
		assert.ErrorIs(t, err, ErrNoUser)
	})
}
