package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/spiffcs/stalenotify/internal/constants"
)

// Client wraps the GitHub GraphQL and REST clients behind one
// authenticated HTTP client.
type Client struct {
	gql       *githubv4.Client
	rest      *gh.Client
	rateLimit *RateLimitState
}

type clientOptions struct {
	graphqlURL string
	baseClient *http.Client
}

// Option configures a Client.
type Option func(*clientOptions)

// WithGraphQLURL points the GraphQL client at a different endpoint, such as
// a GitHub Enterprise server.
func WithGraphQLURL(endpoint string) Option {
	return func(o *clientOptions) {
		if endpoint != "" {
			o.graphqlURL = endpoint
		}
	}
}

// WithHTTPClient sets the HTTP client whose transport carries the
// authenticated requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.baseClient = c
	}
}

// NewClient creates a new GitHub client authenticating with a bearer token.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token not provided. Set the GITHUB_TOKEN environment variable")
	}

	o := clientOptions{graphqlURL: constants.GraphQLEndpoint}
	for _, opt := range opts {
		opt(&o)
	}

	if o.baseClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.baseClient)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	state := newRateLimitState()
	tc.Transport = &rateLimitTransport{
		base:  tc.Transport,
		state: state,
	}

	if o.graphqlURL == constants.GraphQLEndpoint {
		return &Client{
			gql:       githubv4.NewClient(tc),
			rest:      gh.NewClient(tc),
			rateLimit: state,
		}, nil
	}

	base, err := restBaseURL(o.graphqlURL)
	if err != nil {
		return nil, err
	}
	rest, err := gh.NewClient(tc).WithEnterpriseURLs(base, base)
	if err != nil {
		return nil, fmt.Errorf("invalid enterprise endpoint %s: %w", o.graphqlURL, err)
	}

	return &Client{
		gql:       githubv4.NewEnterpriseClient(o.graphqlURL, tc),
		rest:      rest,
		rateLimit: state,
	}, nil
}

// restBaseURL derives the server root from a GraphQL endpoint such as
// https://github.example.com/api/graphql. go-github appends api/v3/ to it.
func restBaseURL(graphqlURL string) (string, error) {
	u, err := url.Parse(graphqlURL)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", graphqlURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid endpoint %q: scheme and host required", graphqlURL)
	}
	p := strings.TrimSuffix(u.Path, "/")
	p = strings.TrimSuffix(p, "/graphql")
	p = strings.TrimSuffix(p, "/api")
	u.Path = p + "/"
	u.RawQuery = ""
	return u.String(), nil
}

// AuthenticatedUser returns the authenticated user's login
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.rest.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// RateLimits fetches the current GitHub API rate limit status.
func (c *Client) RateLimits(ctx context.Context) (*gh.RateLimits, error) {
	limits, _, err := c.rest.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits: %w", err)
	}
	return limits, nil
}

// RateLimitStatus returns the quota last observed on any response.
func (c *Client) RateLimitStatus() (remaining, limit int, resetAt time.Time, limited bool) {
	return c.rateLimit.Status()
}
