package multiplier

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type RecordDTO struct {
	Id            int     `json:"id,omitempty"`
	ProjectId     string  `json:"projectId,omitempty"`
	ProjectName   string  `json:"projectName,omitempty"`
	Multiplier    float64 `json:"multiplier"`
	EffectiveDate string  `json:"effectiveDate"`
	EndDate       string  `json:"endDate,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) AddRecord(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	record, err := dtoToRecord(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.AddRecord(r.Context(), vars["id"], record)
	if err != nil {
		if errors.Is(err, ErrInvalidInterval) || errors.Is(err, ErrInvalidMultiplier) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(recordToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	history, err := h.service.History(r.Context(), vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RecordDTO, 0, len(history))
	for _, record := range history {
		dtos = append(dtos, recordToDTO(record))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetMultiplier resolves the multiplier in effect for the project on the
// requested date. A project with no records yields the neutral default.
func (h *Handler) GetMultiplier(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	date, err := time.Parse(dateFormat, r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Invalid date parameter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	value, err := h.service.Resolve(r.Context(), vars["id"], date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	response := struct {
		ProjectId  string  `json:"projectId"`
		Date       string  `json:"date"`
		Multiplier float64 `json:"multiplier"`
	}{vars["id"], date.Format(dateFormat), value}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func recordToDTO(record Record) RecordDTO {
	dto := RecordDTO{
		Id:            record.Id,
		ProjectId:     record.ProjectId,
		ProjectName:   record.ProjectName,
		Multiplier:    record.Multiplier,
		EffectiveDate: record.EffectiveDate.Format(dateFormat),
		Notes:         record.Notes,
	}
	if !record.EndDate.IsZero() {
		dto.EndDate = record.EndDate.Format(dateFormat)
	}
	return dto
}

func dtoToRecord(dto RecordDTO) (Record, error) {
	effectiveDate, err := time.Parse(dateFormat, dto.EffectiveDate)
	if err != nil {
		return Record{}, ErrInvalidInterval
	}
	var endDate time.Time
	if dto.EndDate != "" {
		endDate, err = time.Parse(dateFormat, dto.EndDate)
		if err != nil {
			return Record{}, ErrInvalidInterval
		}
	}
	if dto.Multiplier <= 0 {
		return Record{}, ErrInvalidMultiplier
	}
	return Record{
		Id:            dto.Id,
		ProjectId:     dto.ProjectId,
		ProjectName:   dto.ProjectName,
		Multiplier:    dto.Multiplier,
		EffectiveDate: effectiveDate,
		EndDate:       endDate,
		Notes:         dto.Notes,
	}, nil
}
