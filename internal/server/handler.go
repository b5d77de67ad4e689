package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"friede/internal/ai"
	"friede/internal/observability"
	"friede/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// aiService returns the startup-initialized AI service for an operation
func (s *Server) aiService(op string) (*ai.Service, error) {
	svc, ok := s.aiServices[op]
	if !ok {
		return nil, fmt.Errorf("AI service not initialized for operation %s", op)
	}
	return svc, nil
}

// createInterviewHandler wraps the interview question handler with observability
func (s *Server) createInterviewHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		ctx, span := tracer.Start(ctx, "api.interview")
		defer span.End()

		var req InterviewRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Role) == "" {
			err := fmt.Errorf("missing role")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing role", "role field is required", http.StatusBadRequest)
			return
		}
		if len(req.Resume) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d chars", len(req.Resume))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resume exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.role", req.Role),
			attribute.String("request.difficulty", req.Difficulty),
			attribute.Int("request.count", req.Count),
			attribute.String("operation", "interview"),
		)

		input := types.InterviewInput{
			Role:       req.Role,
			Difficulty: req.Difficulty,
			Focus:      req.Focus,
			Resume:     req.Resume,
			Count:      req.Count,
		}

		aiService, err := s.aiService("interview")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.InterviewOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "interview", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.GenerateInterview(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				Provider:   output.Provider,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "interview_generated", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to generate interview", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "interview_generated", true, om,
			attribute.Int("question_count", len(result.Questions)),
			attribute.String("provider", result.Provider))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.question_count", len(result.Questions)),
			attribute.String("response.provider", result.Provider),
		)

		writeJSONResponse(w, span, result)
	}
}

// createFeedbackHandler wraps the answer scoring handler with observability
func (s *Server) createFeedbackHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		ctx, span := tracer.Start(ctx, "api.feedback")
		defer span.End()

		var req FeedbackRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Question) == "" {
			err := fmt.Errorf("missing question")
			span.RecordError(err)
			writeErrorResponse(w, "Missing question", "question field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Answer) == "" {
			err := fmt.Errorf("missing answer")
			span.RecordError(err)
			writeErrorResponse(w, "Missing answer", "answer field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.answer_length", len(req.Answer)),
			attribute.String("operation", "feedback"),
		)

		input := types.FeedbackInput{
			Role:     req.Role,
			Question: req.Question,
			Answer:   req.Answer,
		}

		aiService, err := s.aiService("feedback")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.FeedbackOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "feedback", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.ScoreAnswer(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				Provider:   output.Provider,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "answer_scored", false, om)
			writeErrorResponse(w, "Failed to score answer", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "answer_scored", true, om,
			attribute.Int("score", result.Score),
			attribute.String("provider", result.Provider))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.score", result.Score),
		)

		writeJSONResponse(w, span, result)
	}
}

// createResumeHandler wraps the resume analysis handler with observability
func (s *Server) createResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		ctx, span := tracer.Start(ctx, "api.resume")
		defer span.End()

		var req ResumeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Resume) == "" {
			err := fmt.Errorf("missing resume")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume", "resume field is required", http.StatusBadRequest)
			return
		}
		if len(req.Resume) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d chars", len(req.Resume))
			span.RecordError(err)
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resume exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.Resume)),
			attribute.String("operation", "resume"),
		)

		input := types.ResumeInput{
			Resume:         req.Resume,
			TargetRole:     req.TargetRole,
			JobDescription: req.JobDescription,
		}

		aiService, err := s.aiService("resume")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.ResumeOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "resume", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.AnalyzeResume(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				Provider:   output.Provider,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false, om)
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true, om,
			attribute.Int("skills_count", len(result.Skills)),
			attribute.String("provider", result.Provider))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.skills_count", len(result.Skills)),
		)

		writeJSONResponse(w, span, result)
	}
}

// createCareerHandler wraps the career pathway handler with observability
func (s *Server) createCareerHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		ctx, span := tracer.Start(ctx, "api.career")
		defer span.End()

		var req CareerRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.TargetRole) == "" {
			err := fmt.Errorf("missing target role")
			span.RecordError(err)
			writeErrorResponse(w, "Missing target role", "targetRole field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.target_role", req.TargetRole),
			attribute.Int("request.skill_count", len(req.CurrentSkills)),
			attribute.String("operation", "career"),
		)

		input := types.CareerInput{
			CurrentSkills:   req.CurrentSkills,
			TargetRole:      req.TargetRole,
			ExperienceYears: req.ExperienceYears,
		}

		aiService, err := s.aiService("career")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.CareerOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "career", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.PlanCareer(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				Provider:   output.Provider,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "pathway_planned", false, om)
			writeErrorResponse(w, "Failed to plan career pathway", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "pathway_planned", true, om,
			attribute.Int("readiness", result.Readiness),
			attribute.String("provider", result.Provider))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.readiness", result.Readiness),
		)

		writeJSONResponse(w, span, result)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeJSONResponse encodes a response body, recording encoding failures on the span
func writeJSONResponse(w http.ResponseWriter, span oteltrace.Span, v any) {
	w.Header().Set("Content-Type", "application/json")
	writeJSONBody(w, span, v)
}

// writeJSONBody encodes a body after headers and status have been written
func writeJSONBody(w http.ResponseWriter, span oteltrace.Span, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
