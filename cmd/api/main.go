package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/amrassal1991/MockCall/internal/analyzer"
	"github.com/amrassal1991/MockCall/internal/export"
	"github.com/amrassal1991/MockCall/internal/logger"
	"github.com/amrassal1991/MockCall/internal/rubric"
	"github.com/amrassal1991/MockCall/internal/scenario"
	"github.com/amrassal1991/MockCall/internal/session"
	"github.com/amrassal1991/MockCall/internal/types"
)

// sessionManager tracks live training calls by id. Each session is driven by
// one caller at a time; the map lock only guards lookup and registration.
type sessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session.CallSession
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[string]*session.CallSession)}
}

func (m *sessionManager) add(s *session.CallSession) string {
	id := uuid.New().String()
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return id
}

func (m *sessionManager) get(id string) *session.CallSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

func (m *sessionManager) remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "mockcall").Info("starting service")

	catalog, err := rubric.New()
	if err != nil {
		log.WithError(err).Fatal("rubric catalog failed validation")
	}
	turnAnalyzer := analyzer.New(catalog)
	manager := newSessionManager()
	exportDir := os.Getenv("REPORT_EXPORT_DIR")

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// stateless ad-hoc scoring
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "analyze")
		var req struct {
			AgentText    string             `json:"agent_text"`
			CustomerText string             `json:"customer_text"`
			Context      *types.CallContext `json:"context"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		ctx := types.NewCallContext()
		if req.Context != nil {
			ctx = *req.Context
		}
		start := time.Now()
		analysis := turnAnalyzer.AnalyzeTurn(req.AgentText, req.CustomerText, ctx)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("total_score", analysis.TotalScore).Info("turn analyzed")
		writeJSON(w, http.StatusOK, analysis)
	})

	// start a new training call
	mux.HandleFunc("/sessions/start", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "sessions.start")
		var req struct {
			ScenarioID string `json:"scenario_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		sc, err := scenario.Fetch(req.ScenarioID)
		if err != nil {
			reqLog.WithError(err).Error("scenario fetch failed")
			http.Error(w, "scenario provider unavailable", http.StatusBadGateway)
			return
		}
		s := session.NewCallSession(turnAnalyzer)
		if err := s.Start(session.ScenarioRef{ID: sc.ID, Label: sc.Label}); err != nil {
			reqLog.WithError(err).Error("session start failed")
			http.Error(w, "session start failed", http.StatusInternalServerError)
			return
		}
		id := manager.add(s)
		logger.New().WithSession(id).WithField("scenario_id", sc.ID).Info("session started")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"session_id": id,
			"scenario":   sc,
		})
	})

	// score one exchange on an active call
	mux.HandleFunc("/sessions/interact", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "sessions.interact")
		var req struct {
			SessionID    string                  `json:"session_id"`
			AgentText    string                  `json:"agent_text"`
			CustomerText string                  `json:"customer_text"`
			Overrides    *types.ContextOverrides `json:"overrides"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		s := manager.get(req.SessionID)
		if s == nil {
			reqLog.WithField("session_id", req.SessionID).Warn("unknown session")
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}
		sessLog := logger.New().WithSession(req.SessionID)
		rec, err := s.ProcessInteraction(req.AgentText, req.CustomerText, req.Overrides)
		if err != nil {
			sessLog.WithError(err).Warn("interaction rejected")
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		resp := map[string]interface{}{
			"turn":                rec,
			"ended":               s.Status() == session.StatusEnded,
			"live_recommendation": s.LiveRecommendation(),
		}
		if s.Status() == session.StatusEnded {
			resp["end_reason"] = s.EndReason()
		}
		sessLog.WithField("turn", rec.Turn).
			WithField("total_score", rec.Analysis.TotalScore).Info("interaction processed")
		writeJSON(w, http.StatusOK, resp)
	})

	// end a call and collect the report
	mux.HandleFunc("/sessions/end", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "sessions.end")
		var req struct {
			SessionID string `json:"session_id"`
			Reason    string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		s := manager.get(req.SessionID)
		if s == nil {
			reqLog.WithField("session_id", req.SessionID).Warn("unknown session")
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}
		sessLog := logger.New().WithSession(req.SessionID)
		report, err := s.End(req.Reason)
		if err != nil {
			// The session may have already auto-ended; serve its frozen report.
			report, err = s.Report()
			if err != nil {
				sessLog.WithError(err).Warn("end rejected")
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
		}
		manager.remove(req.SessionID)
		if exportDir != "" {
			exportReport(report, exportDir, req.SessionID, sessLog)
		}
		sessLog.WithField("percentage", report.QualityMetrics.Percentage).Info("session ended")
		writeJSON(w, http.StatusOK, report)
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func exportReport(report types.SessionReport, dir, sessionID string, log *logrus.Entry) {
	if err := export.WriteJSON(report, filepath.Join(dir, sessionID+".json")); err != nil {
		log.WithError(err).Warn("json export failed")
	}
	if err := export.WriteWorkbook(report, filepath.Join(dir, sessionID+".xlsx")); err != nil {
		log.WithError(err).Warn("workbook export failed")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}
