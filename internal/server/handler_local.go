package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"friede/internal/analysis"
	"friede/internal/aptitude"
	"friede/internal/judge"
	"friede/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// createATSHandler scores a resume against a job description without any AI provider
func (s *Server) createATSHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		_, span := tracer.Start(ctx, "api.ats")
		defer span.End()

		var req ResumeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Resume) == "" {
			err := fmt.Errorf("missing resume")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume", "resume field is required", http.StatusBadRequest)
			return
		}

		report := analysis.ScoreATS(req.Resume, req.TargetRole, req.JobDescription)

		span.SetAttributes(
			attribute.String("operation", "ats"),
			attribute.Int("response.score", report.Score),
		)

		writeJSONResponse(w, span, report)
	}
}

// createDetectHandler runs the AI-generated-text heuristics
func (s *Server) createDetectHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		_, span := tracer.Start(ctx, "api.aidetect")
		defer span.End()

		var req DetectRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			err := fmt.Errorf("missing text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing text", "text field is required", http.StatusBadRequest)
			return
		}

		report := analysis.DetectAI(req.Text)

		span.SetAttributes(
			attribute.String("operation", "aidetect"),
			attribute.Int("response.score", report.Score),
			attribute.String("response.verdict", report.Verdict),
		)

		writeJSONResponse(w, span, report)
	}
}

// createPerformanceHandler runs the static code performance heuristics
func (s *Server) createPerformanceHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		_, span := tracer.Start(ctx, "api.performance")
		defer span.End()

		var req PerformanceRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Source) == "" {
			err := fmt.Errorf("missing source")
			span.RecordError(err)
			writeErrorResponse(w, "Missing source", "source field is required", http.StatusBadRequest)
			return
		}

		report := analysis.AnalyzeCodePerformance(req.Source, req.Language)

		span.SetAttributes(
			attribute.String("operation", "performance"),
			attribute.String("response.complexity", report.ComplexityClass),
		)

		writeJSONResponse(w, span, report)
	}
}

// createAptitudeTestHandler assembles a deterministic aptitude test from a seed
func (s *Server) createAptitudeTestHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		_, span := tracer.Start(ctx, "api.aptitude_test")
		defer span.End()

		seed := time.Now().UnixNano()
		if raw := r.URL.Query().Get("seed"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				span.RecordError(err)
				writeErrorResponse(w, "Invalid seed", "seed must be an integer", http.StatusBadRequest)
				return
			}
			seed = parsed
		}

		perCategory := 0
		if raw := r.URL.Query().Get("perCategory"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				span.RecordError(err)
				writeErrorResponse(w, "Invalid perCategory", "perCategory must be an integer", http.StatusBadRequest)
				return
			}
			perCategory = parsed
		}

		questions := aptitude.AssembleTest(seed, perCategory)

		span.SetAttributes(
			attribute.String("operation", "aptitude_test"),
			attribute.Int64("request.seed", seed),
			attribute.Int("response.question_count", len(questions)),
		)

		writeJSONResponse(w, span, map[string]any{
			"seed":      seed,
			"questions": questions,
		})
	}
}

// createAptitudeScoreHandler grades a submitted aptitude test
func (s *Server) createAptitudeScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		_, span := tracer.Start(ctx, "api.aptitude_score")
		defer span.End()

		var req AptitudeScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		answers := make([]aptitude.Answer, len(req.Answers))
		for i, a := range req.Answers {
			answers[i] = aptitude.Answer{QuestionID: a.QuestionID, SelectedIndex: a.SelectedIndex}
		}

		result, err := aptitude.Score(answers)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to score test", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("operation", "aptitude_score"),
			attribute.Int("response.percent", result.Percent),
			attribute.String("response.band", result.Band),
		)

		writeJSONResponse(w, span, result)
	}
}

// createJudgeSubmitHandler accepts an async code submission
func (s *Server) createJudgeSubmitHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		_, span := tracer.Start(ctx, "api.judge_submit")
		defer span.End()

		var req JudgeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		cases := make([]judge.TestCase, len(req.TestCases))
		for i, c := range req.TestCases {
			cases[i] = judge.TestCase{Input: c.Input, ExpectedOutput: c.ExpectedOutput}
		}

		submission, err := s.JudgeService.Submit(req.Language, req.Source, req.Stdin, cases)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to submit code", err.Error(), judgeErrorStatus(err))
			return
		}

		metrics := om.GetMetrics()
		metrics.RecordJudgeQueueDepth(ctx, s.JudgeService.QueueDepth(), om)

		span.SetAttributes(
			attribute.String("operation", "judge_submit"),
			attribute.String("request.language", req.Language),
			attribute.Int("request.case_count", len(cases)),
			attribute.String("response.submission_id", submission.ID),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		writeJSONBody(w, span, submission)
	}
}

// createJudgeGetHandler returns the state of an async code submission
func (s *Server) createJudgeGetHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("friede.api")
		_, span := tracer.Start(ctx, "api.judge_get")
		defer span.End()

		id := strings.TrimPrefix(r.URL.Path, "/judge/submissions/")
		if id == "" || strings.Contains(id, "/") {
			writeErrorResponse(w, "Invalid submission ID", "expected /judge/submissions/{id}", http.StatusBadRequest)
			return
		}

		submission, err := s.JudgeService.Get(id)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Submission not found", err.Error(), http.StatusNotFound)
			return
		}

		if submission.Report != nil {
			metrics := om.GetMetrics()
			duration := time.Duration(0)
			if submission.FinishedAt != nil {
				duration = submission.FinishedAt.Sub(submission.CreatedAt)
			}
			metrics.TrackJudgeSubmission(ctx, submission.Language, submission.Report.Verdict, duration, om)
		}

		span.SetAttributes(
			attribute.String("operation", "judge_get"),
			attribute.String("request.submission_id", id),
			attribute.String("response.state", submission.State),
		)

		writeJSONResponse(w, span, submission)
	}
}

// judgeErrorStatus maps submission errors to HTTP status codes
func judgeErrorStatus(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "queue is full"):
		return http.StatusServiceUnavailable
	case strings.Contains(msg, "language"), strings.Contains(msg, "source"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
