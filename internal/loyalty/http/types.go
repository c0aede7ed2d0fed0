package http

import "time"

// Wire types for the /v1 API. Field names follow the original host-display
// and kiosk clients, which the JSON contract keeps stable.

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type timeResponse struct {
	Time    string `json:"time"`
	IsDebug bool   `json:"is_debug"`
}

type debugTimeResponse struct {
	Success bool   `json:"success"`
	Time    string `json:"time"`
}

type codeResponse struct {
	Code      string `json:"code"`
	ExpiresIn int    `json:"expires_in"`
}

type checkinRequest struct {
	Code string `json:"code"`
}

type checkinResponse struct {
	Success     bool  `json:"success"`
	Points      int64 `json:"points"`
	TotalPoints int64 `json:"total_points"`
}

type queueResponse struct {
	QueueLength       int     `json:"queue_length"`
	EstimatedWaitTime float64 `json:"estimated_wait_time"`
	IsOpen            bool    `json:"is_open"`
}

type qrResponse struct {
	QRCode string `json:"qr_code"`
	Code   string `json:"code"`
}

type rewardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int64  `json:"points_cost"`
	Stock       int64  `json:"stock"`
}

type redeemResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	RemainingStock  int64  `json:"remaining_stock"`
	RemainingPoints int64  `json:"remaining_points"`
}

type transactionResponse struct {
	Points      int64     `json:"points"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type checkinHistoryResponse struct {
	PointsEarned int64     `json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

type profileResponse struct {
	UserID       string                   `json:"user_id"`
	Username     string                   `json:"username"`
	Email        string                   `json:"email"`
	Points       int64                    `json:"points"`
	LastCheckin  *time.Time               `json:"last_checkin,omitempty"`
	Transactions []transactionResponse    `json:"transactions"`
	CheckIns     []checkinHistoryResponse `json:"checkins"`
}

type hostResponse struct {
	Code              string  `json:"code"`
	ExpiresIn         int     `json:"expires_in"`
	QueueLength       int     `json:"queue_length"`
	EstimatedWaitTime float64 `json:"estimated_wait_time"`
	IsOpen            bool    `json:"is_open"`
}

type healthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

type healthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *healthChecks `json:"checks,omitempty"`
}
