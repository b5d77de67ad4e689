package server

import (
	"time"

	"friede/internal/ai"
	"friede/internal/config"
	frErrors "friede/internal/errors"
	"friede/internal/judge"
)

// InterviewRequest represents the request body for the interview questions endpoint
type InterviewRequest struct {
	Role       string   `json:"role"`
	Difficulty string   `json:"difficulty"`
	Focus      []string `json:"focus,omitempty"`
	Resume     string   `json:"resume,omitempty"`
	Count      int      `json:"count,omitempty"`
}

// FeedbackRequest represents the request body for the answer feedback endpoint
type FeedbackRequest struct {
	Role     string `json:"role"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ResumeRequest represents the request body for the resume analysis and ATS endpoints
type ResumeRequest struct {
	Resume         string `json:"resume"`
	TargetRole     string `json:"targetRole,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// CareerRequest represents the request body for the career pathway endpoint
type CareerRequest struct {
	CurrentSkills   []string `json:"currentSkills"`
	TargetRole      string   `json:"targetRole"`
	ExperienceYears int      `json:"experienceYears,omitempty"`
}

// JudgeRequest represents the request body for the code submission endpoint
type JudgeRequest struct {
	Language  string           `json:"language"`
	Source    string           `json:"source"`
	Stdin     string           `json:"stdin,omitempty"`
	TestCases []JudgeCaseInput `json:"testCases,omitempty"`
}

// JudgeCaseInput is one test case in a code submission
type JudgeCaseInput struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

// AptitudeScoreRequest represents the request body for the aptitude scoring endpoint
type AptitudeScoreRequest struct {
	Answers []AptitudeAnswerInput `json:"answers"`
}

// AptitudeAnswerInput is one selected answer in an aptitude submission
type AptitudeAnswerInput struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
}

// DetectRequest represents the request body for the AI detection endpoint
type DetectRequest struct {
	Text string `json:"text"`
}

// PerformanceRequest represents the request body for the code performance endpoint
type PerformanceRequest struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// AI services, one per operation, created at startup so admission
	// state persists across requests
	aiServices map[string]*ai.Service

	// Async code judging
	JudgeService *judge.Service

	// Logger
	Logger *frErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *frErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		aiServices:     make(map[string]*ai.Service),
		Logger:         logger,
	}
}

// initServices creates the per-operation AI services and the judge service
func (s *Server) initServices() error {
	for _, op := range []string{"interview", "feedback", "resume", "career"} {
		svc, err := ai.NewService(s.AppConfig, op, s.Logger)
		if err != nil {
			return err
		}
		s.aiServices[op] = svc
	}

	judgeService, err := judge.NewService(&s.AppConfig.Judge, s.Logger)
	if err != nil {
		return err
	}
	s.JudgeService = judgeService

	return nil
}

// closeServices releases AI provider and judge resources
func (s *Server) closeServices() {
	for op, svc := range s.aiServices {
		if err := svc.Close(); err != nil {
			s.Logger.Warn("Failed to close AI service", "operation", op, "error", err)
		}
	}
	if s.JudgeService != nil {
		s.JudgeService.Close()
	}
}
