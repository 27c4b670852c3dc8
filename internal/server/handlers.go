package server

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/medspasync/reconcile/internal/match"
	"github.com/medspasync/reconcile/internal/model"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":  "MedSpaSync Reconciliation API",
		"version":  model.APIVersion,
		"status":   "operational",
		"industry": "Medical Spa Transaction Reconciliation",
		"endpoints": map[string]string{
			"/health":        "System health check",
			"/predict":       "Single transaction pair prediction",
			"/batch-predict": "Batch pair processing",
			"/churn-risk":    "Account churn-risk assessment",
			"/value-metrics": "Practice ROI quantification",
			"/metrics":       "Service metrics snapshot",
			"/test":          "Sample prediction",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "OK",
		"timestamp":    time.Now().UTC(),
		"model_loaded": true,
		"persistence":  s.store != nil,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := decodeBody(r.Body, &req); err != nil {
		s.rejectValidation(w, err.Error())
		return
	}

	reward, err := parseRecord(req.Reward, "reward_transaction")
	if err != nil {
		s.rejectValidation(w, err.Error())
		return
	}
	pos, err := parseRecord(req.POS, "pos_transaction")
	if err != nil {
		s.rejectValidation(w, err.Error())
		return
	}
	threshold, err := validateThreshold(req.Threshold, s.scorer.Config().DefaultThreshold)
	if err != nil {
		s.rejectValidation(w, err.Error())
		return
	}

	result := s.scorer.Predict(reward, pos, threshold)
	s.metrics.RecordPrediction(result.Recommendation)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}

func (s *Server) handleBatchPredict(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(r.Body, &req); err != nil {
		s.rejectValidation(w, err.Error())
		return
	}

	if req.Pairs == nil {
		s.rejectValidation(w, "transaction_pairs must be a list")
		return
	}
	threshold, err := validateThreshold(req.Threshold, s.scorer.Config().DefaultThreshold)
	if err != nil {
		s.rejectValidation(w, err.Error())
		return
	}

	// Per-pair validation failures land in their own slot instead of
	// rejecting the whole batch.
	inputs := make([]match.BatchInput, len(req.Pairs))
	for i, raw := range req.Pairs {
		pair, err := parsePair(raw, pairLabel(i))
		if err != nil {
			inputs[i] = match.BatchInput{Invalid: err.Error()}
			continue
		}
		inputs[i] = match.BatchInput{Pair: pair}
	}

	result := s.scorer.ScoreBatch(r.Context(), inputs, threshold, match.DefaultBatchParallelism)
	s.metrics.RecordBatch(result)

	if s.store != nil {
		if _, err := s.store.CreateRun(r.Context(), "api", threshold, result); err != nil {
			// Persistence is best-effort; the scoring response still stands.
			zap.L().Error("server: persist batch run", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"results":         result.Items,
		"summary":         result.Summary,
		"processing_info": result.ProcessingInfo,
	})
}

func (s *Server) handleChurnRisk(w http.ResponseWriter, r *http.Request) {
	var acct model.AccountActivity
	if err := decodeBody(r.Body, &acct); err != nil {
		s.rejectValidation(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  s.churn.Assess(acct),
	})
}

func (s *Server) handleValueMetrics(w http.ResponseWriter, r *http.Request) {
	var snap model.PracticeSnapshot
	if err := decodeBody(r.Body, &snap); err != nil {
		s.rejectValidation(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  s.value.Quantify(snap),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap, err := s.metrics.Collect(r.Context(), 24)
	if err != nil {
		zap.L().Error("server: collect metrics", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error", codeInternalError)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleTest scores a canonical sample pair so operators can smoke-test a
// deployment without crafting a payload.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	reward := model.TransactionRecord{
		CustomerName: "Sarah Johnson",
		Service:      "Botox Treatment",
		Amount:       35.0,
		Date:         "2024-08-15",
	}
	pos := model.TransactionRecord{
		CustomerName: "Johnson, Sarah",
		Service:      "Neurotoxin Injection",
		Amount:       350.0,
		Date:         "2024-08-15 14:30:00",
	}

	result := s.scorer.Predict(reward, pos, s.scorer.Config().DefaultThreshold)

	writeJSON(w, http.StatusOK, map[string]any{
		"test_status":       "SUCCESS",
		"sample_prediction": result,
		"api_operational":   true,
	})
}

func (s *Server) rejectValidation(w http.ResponseWriter, msg string) {
	s.metrics.RecordValidationError()
	writeError(w, http.StatusBadRequest, msg, codeValidationError)
}

func pairLabel(i int) string {
	return "transaction_pairs[" + strconv.Itoa(i) + "]"
}
