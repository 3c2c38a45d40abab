// Package client talks to the production log API over HTTP.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ivancepe/Production-Trial/internal/models"
	"github.com/ivancepe/Production-Trial/internal/productionlog"

	"github.com/gofiber/fiber/v2"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return e.Message
}

// NetworkError means no usable answer was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

type CreateRequest = productionlog.CreateRequest

type Client struct {
	baseURL string
	timeout time.Duration
}

// New returns a client for the collection URL, e.g.
// http://localhost:8080/api/production-logs.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *Client) List() ([]models.ProductionLog, error) {
	a := fiber.Get(c.baseURL)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	var logs []models.ProductionLog
	if err := c.do(a, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.ProductionLog{}
	}
	return logs, nil
}

func (c *Client) Create(req CreateRequest) (*models.ProductionLog, error) {
	a := fiber.Post(c.baseURL).JSON(req)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	var created models.ProductionLog
	if err := c.do(a, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) do(a *fiber.Agent, out any) error {
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return &NetworkError{Err: errors.Join(errs...)}
	}

	if code < 200 || code > 299 {
		apiErr := &APIError{Status: code}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
