// Package github fetches the contribution calendar shown on the home page
// from the GitHub GraphQL API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const DefaultEndpoint = "https://api.github.com/graphql"

// Day is one cell of the calendar. Level runs from 0 (no contributions) to 4.
type Day struct {
	Date  string
	Count int
	Level int
}

// Calendar is a year of contributions laid out in weeks, Sunday first.
type Calendar struct {
	Total       int
	MonthLabels []string
	Weeks       [][]Day
}

// Days flattens the weeks.
func (c *Calendar) Days() []Day {
	var out []Day
	for _, w := range c.Weeks {
		out = append(out, w...)
	}
	return out
}

type Config struct {
	Username string
	Token    string
	Endpoint string
	Timeout  time.Duration
}

// Client queries the calendar with a personal access token.
type Client struct {
	http     *http.Client
	endpoint string
	username string
}

// NewClient builds a client whose requests carry cfg.Token as a bearer token.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Username == "" || cfg.Token == "" {
		return nil, errors.New("github: username and token are required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = cfg.Timeout

	return &Client{http: httpClient, endpoint: cfg.Endpoint, username: cfg.Username}, nil
}

const calendarQuery = `query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        months { name firstDay }
        weeks { contributionDays { date contributionCount contributionLevel } }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type calendarResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Months             []struct {
						Name     string `json:"name"`
						FirstDay string `json:"firstDay"`
					} `json:"months"`
					Weeks []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
							ContributionLevel string `json:"contributionLevel"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Calendar fetches the last year of contributions.
func (c *Client) Calendar(ctx context.Context) (*Calendar, error) {
	body, err := json.Marshal(graphQLRequest{
		Query:     calendarQuery,
		Variables: map[string]any{"login": c.username},
	})
	if err != nil {
		return nil, fmt.Errorf("github: encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: calling GraphQL API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github: GraphQL API returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out calendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("github: decoding response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("github: GraphQL error: %s", out.Errors[0].Message)
	}
	if out.Data.User == nil {
		return nil, fmt.Errorf("github: user %q not found", c.username)
	}

	src := out.Data.User.ContributionsCollection.ContributionCalendar
	cal := &Calendar{Total: src.TotalContributions}
	for _, m := range src.Months {
		cal.MonthLabels = append(cal.MonthLabels, m.Name)
	}
	for _, w := range src.Weeks {
		week := make([]Day, 0, len(w.ContributionDays))
		for _, d := range w.ContributionDays {
			week = append(week, Day{Date: d.Date, Count: d.ContributionCount, Level: level(d.ContributionLevel)})
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal, nil
}

// level maps GitHub's quartile names onto 0..4.
func level(name string) int {
	switch name {
	case "FIRST_QUARTILE":
		return 1
	case "SECOND_QUARTILE":
		return 2
	case "THIRD_QUARTILE":
		return 3
	case "FOURTH_QUARTILE":
		return 4
	default:
		return 0
	}
}
