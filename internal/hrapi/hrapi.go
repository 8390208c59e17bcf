package hrapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultInsiderURL = "https://uat-insiderapi.saigontechnology.vn/api"
	defaultEmpInfoURL = "https://uat-empinfoapi.saigontechnology.vn"
	defaultUserAgent  = "staff-matcher"
	defaultPlannerID  = 97
	defaultTimeout    = 10 * time.Second
)

// Config carries connection settings for the two HR backends: the insider
// API (bookings) and the empinfo API (skills, active status).
type Config struct {
	InsiderURL   string
	EmpInfoURL   string
	InsiderToken string
	EmpInfoToken string
	UserAgent    string
	PlannerID    int
	Timeout      time.Duration
}

// Client talks to the HR data sources. Booking and skill records live in
// different systems with separate bearer tokens.
type Client struct {
	// ctx used only for http requests right now
	ctx          context.Context
	logger       *zap.Logger
	insiderToken string
	empInfoToken string
	plannerID    int

	HTTPClient *http.Client
	UserAgent  string
	InsiderURL string
	EmpInfoURL string
}

func New(ctx context.Context, logger *zap.Logger, cfg Config) *Client {
	if cfg.InsiderURL == "" {
		cfg.InsiderURL = defaultInsiderURL
	}
	if cfg.EmpInfoURL == "" {
		cfg.EmpInfoURL = defaultEmpInfoURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.PlannerID == 0 {
		cfg.PlannerID = defaultPlannerID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		ctx:          ctx,
		logger:       logger,
		insiderToken: cfg.InsiderToken,
		empInfoToken: cfg.EmpInfoToken,
		plannerID:    cfg.PlannerID,
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		UserAgent:  cfg.UserAgent,
		InsiderURL: cfg.InsiderURL,
		EmpInfoURL: cfg.EmpInfoURL,
	}
}
