// Package usersapi provides a client for the remote GoBarber users API.
package usersapi

import "time"

// Config holds configuration for the users API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "http://localhost:3333")
	Timeout time.Duration // HTTP request timeout
}
