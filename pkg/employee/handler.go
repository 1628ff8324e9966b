package employee

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EmployeeDTO struct {
	Id              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Status          string     `json:"status"`
	Department      string     `json:"department,omitempty"`
	Position        string     `json:"position,omitempty"`
	HireDate        *time.Time `json:"hireDate,omitempty"`
	TerminationDate *time.Time `json:"terminationDate,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new employee")
	w.Header().Set("Content-Type", "application/json")

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Add(r.Context(), dtoToEmployee(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(employeeToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	found, err := h.service.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(employeeToDTO(found)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	employees, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, employeeToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id == "" || dto.Id != vars["id"] {
		http.Error(w, "Invalid employee id in request body", http.StatusBadRequest)
		return
	}

	ok, err := h.service.Update(r.Context(), dtoToEmployee(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	ok, err := h.service.Delete(r.Context(), vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func employeeToDTO(employee Employee) EmployeeDTO {
	var hireDate, terminationDate *time.Time
	if !employee.HireDate.IsZero() {
		hireDate = &employee.HireDate
	}
	if !employee.TerminationDate.IsZero() {
		terminationDate = &employee.TerminationDate
	}
	return EmployeeDTO{
		Id:              employee.Id,
		Name:            employee.Name,
		Email:           employee.Email,
		Status:          string(employee.Status),
		Department:      employee.Department,
		Position:        employee.Position,
		HireDate:        hireDate,
		TerminationDate: terminationDate,
	}
}

func dtoToEmployee(dto EmployeeDTO) Employee {
	var hireDate, terminationDate time.Time
	if dto.HireDate != nil {
		hireDate = *dto.HireDate
	}
	if dto.TerminationDate != nil {
		terminationDate = *dto.TerminationDate
	}
	return Employee{
		Id:              dto.Id,
		Name:            dto.Name,
		Email:           dto.Email,
		Status:          Status(dto.Status),
		Department:      dto.Department,
		Position:        dto.Position,
		HireDate:        hireDate,
		TerminationDate: terminationDate,
	}
}
