package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
)

type GoTrueConfig struct {
	// BaseURL is the project URL, e.g. https://xyz.supabase.co.
	BaseURL        string
	ServiceRoleKey string
	Timeout        time.Duration
}

// GoTrue talks to a Supabase auth server through the auth-go client.
type GoTrue struct {
	client auth.Client
	admin  auth.Client
}

func NewGoTrue(cfg GoTrueConfig) *GoTrue {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := auth.New("", cfg.ServiceRoleKey).
		WithCustomAuthURL(strings.TrimRight(cfg.BaseURL, "/") + "/auth/v1").
		WithClient(http.Client{Timeout: timeout})
	return &GoTrue{
		client: client,
		admin:  client.WithToken(cfg.ServiceRoleKey),
	}
}

// Verify resolves an access token to its user by asking the auth server.
// The auth-go client has no context parameter; ctx cancellation is checked
// before the call only.
func (g *GoTrue) Verify(ctx context.Context, token string) (entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return entity.Identity{}, err
	}
	resp, err := g.client.WithToken(token).GetUser()
	if err != nil {
		if status, _, ok := parseAPIError(err); ok && status < 500 {
			return entity.Identity{}, fmt.Errorf("%w: status=%d", repo.ErrInvalidToken, status)
		}
		return entity.Identity{}, fmt.Errorf("gotrue verify: %w", err)
	}
	if resp == nil || resp.ID == uuid.Nil {
		return entity.Identity{}, repo.ErrInvalidToken
	}
	return entity.Identity{ID: resp.ID.String(), Email: resp.Email}, nil
}

// CreateUser registers a confirmed user through the admin API. A 4xx answer
// becomes a ProviderError carrying the server's message.
func (g *GoTrue) CreateUser(ctx context.Context, acc repo.NewAccount) (entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return entity.Identity{}, err
	}
	password := acc.Password
	resp, err := g.admin.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        acc.Email,
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{
			"name": acc.Name,
			"role": string(acc.Role),
		},
	})
	if err != nil {
		if status, body, ok := parseAPIError(err); ok && status >= 400 && status < 500 {
			return entity.Identity{}, &repo.ProviderError{Message: providerMessage(status, body)}
		}
		return entity.Identity{}, fmt.Errorf("gotrue create user: %w", err)
	}
	if resp == nil || resp.ID == uuid.Nil {
		return entity.Identity{}, errors.New("gotrue create user: response has no user id")
	}
	email := resp.Email
	if email == "" {
		email = acc.Email
	}
	return entity.Identity{ID: resp.ID.String(), Email: email}, nil
}

// auth-go reports non-2xx answers as "response status code <n>: <body>".
var apiErrorPattern = regexp.MustCompile(`(?s)status code (\d{3})(?::\s*(.*))?`)

func parseAPIError(err error) (int, string, bool) {
	m := apiErrorPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, "", false
	}
	status, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0, "", false
	}
	return status, m[2], true
}

type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e gotrueError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func providerMessage(status int, body string) string {
	var ge gotrueError
	if json.Unmarshal([]byte(body), &ge) == nil {
		if msg := ge.text(); msg != "" {
			return msg
		}
	}
	if body = strings.TrimSpace(body); body != "" {
		return body
	}
	return http.StatusText(status)
}

var _ repo.IdentityProvider = (*GoTrue)(nil)
