package http

import (
	"net/http"

	"finplan/internal/log"
	"finplan/internal/seed"
	"finplan/internal/services"
)

// handleAnalyze runs a stateless analysis over the payload in the body.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input, err := s.toAnalysisInput(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.analysis.Analyze(r.Context(), input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var req createScenarioRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records := toRecords(req.Records)
	goals, err := toGoals(req.Goals)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Demo {
		now := s.now()
		records = seed.Records(s.demoSeed, now)
		goals = seed.Goals(s.demoSeed, now)
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "record "+rec.Month+": "+err.Error())
			return
		}
	}
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "goal "+g.Name+": "+err.Error())
			return
		}
	}

	sc, err := s.scenarios.Create(r.Context(), req.Name, records, goals, req.CurrentBalance)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Scenario created",
		log.FieldScenarioID, sc.ID,
		log.FieldRecords, len(sc.Records),
		log.FieldGoals, len(sc.Goals))
	writeJSON(w, http.StatusCreated, sc)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := s.scenarios.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": list})
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scenarios.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.scenarios.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetRecords(w http.ResponseWriter, r *http.Request) {
	var req setRecordsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records := toRecords(req.Records)
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "record "+rec.Month+": "+err.Error())
			return
		}
	}
	sc, err := s.scenarios.SetRecords(r.Context(), r.PathValue("id"), records)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleSetGoals(w http.ResponseWriter, r *http.Request) {
	var req setGoalsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goals, err := toGoals(req.Goals)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "goal "+g.Name+": "+err.Error())
			return
		}
	}
	sc, err := s.scenarios.SetGoals(r.Context(), r.PathValue("id"), goals)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleSetBalance(w http.ResponseWriter, r *http.Request) {
	var req setBalanceRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CurrentBalance.IsNegative() {
		writeError(w, http.StatusUnprocessableEntity, "current balance must not be negative")
		return
	}
	sc, err := s.scenarios.SetBalance(r.Context(), r.PathValue("id"), req.CurrentBalance)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// handleAnalyzeScenario analyzes a stored scenario. The body is optional
// and may override the horizon or pin the analysis date.
func (s *Server) handleAnalyzeScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scenarios.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	var req scenarioAnalyzeRequest
	if r.ContentLength > 0 {
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	today, err := s.parseToday(req.Today)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	horizon := req.HorizonMonths
	if horizon == 0 {
		horizon = s.defaultHorizon
	}

	input := services.AnalysisInput{
		Records:        sc.Records,
		Goals:          sc.Goals,
		HorizonMonths:  horizon,
		Today:          today,
		CurrentBalance: sc.CurrentBalance,
	}
	result, err := s.analysis.Analyze(r.Context(), input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
