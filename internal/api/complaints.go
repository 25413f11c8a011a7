package api

import (
	"net/http"

	"hotelier/internal/models"
)

type complaintRequest struct {
	CustomerID  int64  `json:"customer_id"`
	Description string `json:"description"`
}

func (s *Server) handleCreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req complaintRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Complaint Create Failed", err.Error())
		return
	}
	if req.CustomerID <= 0 || req.Description == "" {
		writeError(w, http.StatusBadRequest, "Complaint Create Failed", "customer_id and description are required")
		return
	}

	complaint := &models.Complaint{CustomerID: req.CustomerID, Description: req.Description}
	if err := s.complaints.CreateComplaint(r.Context(), complaint); err != nil {
		writeServiceError(w, "Complaint Create Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Complaint Created Successfully", complaint)
}

func (s *Server) handleGetComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	complaint, err := s.complaints.GetComplaint(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Complaint Not Found", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Complaint Details", complaint)
}

func (s *Server) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := s.complaints.ListComplaints(r.Context())
	if err != nil {
		writeServiceError(w, "Complaint List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Complaint List", complaints)
}

func (s *Server) handleResolveComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.complaints.ResolveComplaint(r.Context(), id); err != nil {
		writeServiceError(w, "Complaint Resolve Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Complaint Resolved Successfully", nil)
}

func (s *Server) handleDeleteComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.complaints.DeleteComplaint(r.Context(), id); err != nil {
		writeServiceError(w, "Complaint Delete Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Complaint Deleted Successfully", nil)
}
