// Package client is a Go client for the accessreview HTTP API.
package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

// APIError is a non 2xx answer of the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	r *resty.Client
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.r.SetTimeout(d)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		r: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(10 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Register(name, password string) (accessreview.Token, error) {
	var token accessreview.Token
	resp, err := c.r.R().
		SetBody(accessreview.Credentials{Name: name, Password: password}).
		SetResult(&token).
		Post("/register_user")
	if err = check(resp, err); err != nil {
		return 0, err
	}

	return token, nil
}

func (c *Client) Login(name, password string) (accessreview.Token, error) {
	var token accessreview.Token
	resp, err := c.r.R().
		SetBody(accessreview.Credentials{Name: name, Password: password}).
		SetResult(&token).
		Post("/login")
	if err = check(resp, err); err != nil {
		return 0, err
	}

	return token, nil
}

func (c *Client) Logout(token accessreview.Token) error {
	resp, err := c.r.R().
		SetBody(map[string]accessreview.Token{"token": token}).
		Post("/logout")
	return check(resp, err)
}

func (c *Client) Search(query string) ([]string, error) {
	names := make([]string, 0)
	resp, err := c.r.R().
		SetQueryParam("query", query).
		SetResult(&names).
		Get("/search")
	if err = check(resp, err); err != nil {
		return nil, err
	}

	return names, nil
}

func (c *Client) GetData(restaurant string, filters ...string) (*accessreview.RestaurantView, error) {
	view := &accessreview.RestaurantView{}
	resp, err := c.r.R().
		SetQueryParam("restaurant", restaurant).
		SetQueryParamsFromValues(map[string][]string{"filter": filters}).
		SetResult(view).
		Get("/get_data")
	if err = check(resp, err); err != nil {
		return nil, err
	}

	return view, nil
}

// AddReview posts a review as the owner of token. Ratings map category names
// to 0..5, or -1 for not rated.
func (c *Client) AddReview(token accessreview.Token, restaurant, review string, ratings map[string]int) (*accessreview.RestaurantView, error) {
	view := &accessreview.RestaurantView{}
	resp, err := c.r.R().
		SetQueryParam("restaurant", restaurant).
		SetBody(accessreview.ReviewRequest{Token: token, Review: review, Ratings: ratings}).
		SetResult(view).
		Post("/add_review")
	if err = check(resp, err); err != nil {
		return nil, err
	}

	return view, nil
}

func (c *Client) FilterReviews(restaurant string, filters ...string) ([]*accessreview.Review, error) {
	reviews := make([]*accessreview.Review, 0)
	resp, err := c.r.R().
		SetQueryParam("restaurant", restaurant).
		SetQueryParamsFromValues(map[string][]string{"filter": filters}).
		SetResult(&reviews).
		Get("/filter_reviews")
	if err = check(resp, err); err != nil {
		return nil, err
	}

	return reviews, nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed - %w", err)
	}
	if resp.StatusCode() == http.StatusOK {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: string(resp.Body())}
	var body struct {
		Error string
	}
	if json.Unmarshal(resp.Body(), &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	}

	return apiErr
}
