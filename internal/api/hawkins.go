package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/strangerlabs/hawkins-core/internal/world"
)

// handleMap returns energy spikes with zone / minimum-energy filters
// and pagination.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	filter := world.SpikeFilter{
		Zone: r.URL.Query().Get("zone"),
	}

	// Unparsable numeric filters are ignored, not rejected: the map is
	// a teaching endpoint and stays permissive about query noise.
	if v := r.URL.Query().Get("min_energy"); v != "" {
		if minEnergy, err := strconv.Atoi(v); err == nil {
			filter.MinEnergy = &minEnergy
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			filter.Offset = offset
		}
	}

	page, err := s.world.FilterSpikes(filter)
	if err != nil {
		s.logger.Error("spike filter failed", "error", err)
		writeInternalError(w, "failed to read energy spikes")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"energySpikes": page.Spikes,
		"total":        page.Total,
		"page":         page.Page,
		"hasMore":      page.HasMore,
		"message":      "Energy spike locations retrieved",
	})
}

// handleOpenPortal opens the gate using an energy spike.
func (s *Server) handleOpenPortal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SpikeID *int `json:"spikeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.SpikeID == nil {
		writeBadRequest(w, "spikeId is required")
		return
	}

	spike, err := s.world.OpenPortal(*req.SpikeID)
	if err != nil {
		if errors.Is(err, world.ErrSpikeNotFound) {
			writeBadRequest(w, "Invalid spikeId")
			return
		}
		s.logger.Error("portal open failed", "error", err)
		writeInternalError(w, "failed to open gate")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   fmt.Sprintf("Gate opened using energy spike at %s", spike.Location),
		"gateOpen":  true,
		"spikeUsed": spike,
	})
}

// handleGetEvidence returns one evidence record by path parameter.
func (s *Server) handleGetEvidence(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "evidenceId")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, errKindBadRequest, "Invalid evidenceId. Must be a number.", map[string]any{
			"field": "evidenceId",
			"value": raw,
		})
		return
	}

	evidence, err := s.world.EvidenceByID(id)
	if err != nil {
		if errors.Is(err, world.ErrEvidenceNotFound) {
			writeNotFound(w, fmt.Sprintf("Evidence with ID %d not found", id), map[string]any{
				"evidenceId": id,
			})
			return
		}
		s.logger.Error("evidence read failed", "error", err)
		writeInternalError(w, "failed to read evidence")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"evidence": evidence,
		"message":  "Evidence retrieved successfully",
	})
}

// handleCreateExperiment validates the nested experiment payload and
// appends it. Validation failures return 422 with one detail per field.
func (s *Server) handleCreateExperiment(w http.ResponseWriter, r *http.Request) {
	// Fields decode as `any` so each one can be type-checked
	// individually; a typed struct would reject the whole body at the
	// first mismatch instead of reporting per-field details.
	var req struct {
		ExperimentName any `json:"experimentName"`
		Subject        any `json:"subject"`
		LabNotes       any `json:"labNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	exp, details := buildExperiment(req.ExperimentName, req.Subject, req.LabNotes)
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	created, err := s.world.AddExperiment(exp)
	if err != nil {
		s.logger.Error("experiment create failed", "error", err)
		writeInternalError(w, "failed to create experiment")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Experiment created successfully",
		"experiment": created,
	})
}

// buildExperiment type-checks the raw payload fields and assembles the
// experiment, collecting a detail per invalid field.
func buildExperiment(rawName, rawSubject, rawNotes any) (world.Experiment, []fieldError) {
	var details []fieldError
	var exp world.Experiment

	name, ok := rawName.(string)
	if !ok || name == "" {
		details = append(details, fieldError{Field: "experimentName", Message: "experimentName is required and must be a string"})
	}
	exp.ExperimentName = name

	subject, ok := rawSubject.(map[string]any)
	if !ok {
		details = append(details, fieldError{Field: "subject", Message: "subject is required and must be an object"})
	} else {
		subjectName, ok := subject["name"].(string)
		if !ok || subjectName == "" {
			details = append(details, fieldError{Field: "subject.name", Message: "subject.name is required and must be a string"})
		}
		exp.Subject.Name = subjectName

		age, ok := subject["age"].(float64)
		if !ok {
			details = append(details, fieldError{Field: "subject.age", Message: "subject.age is required and must be a number"})
		}
		exp.Subject.Age = age

		if rawVitals, present := subject["vitals"]; present {
			vitals, ok := rawVitals.([]any)
			if !ok {
				details = append(details, fieldError{Field: "subject.vitals", Message: "subject.vitals must be an array"})
			}
			exp.Subject.Vitals = vitals
		}
		if rawPowers, present := subject["powers"]; present {
			powers, ok := rawPowers.([]any)
			if !ok {
				details = append(details, fieldError{Field: "subject.powers", Message: "subject.powers must be an array"})
			}
			exp.Subject.Powers = powers
		}
	}

	if rawNotes != nil {
		if notes, ok := rawNotes.(string); ok {
			exp.LabNotes = notes
		}
	}

	return exp, details
}
