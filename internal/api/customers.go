package api

import (
	"net/http"

	"hotelier/internal/models"
)

type customerRequest struct {
	CustomerName string `json:"customer_name"`
	Persons      int    `json:"number_of_persons"`
	ContactNo    string `json:"contact_no"`
	Email        string `json:"email"`
	IDCardNo     string `json:"id_card_no"`
	Address      string `json:"address"`
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Customer Create Failed", err.Error())
		return
	}
	if req.CustomerName == "" {
		writeError(w, http.StatusBadRequest, "Customer Create Failed", "customer_name is required")
		return
	}

	customer := req.toModel(0)
	if err := s.customers.CreateCustomer(r.Context(), customer); err != nil {
		writeServiceError(w, "Customer Create Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Customer Created Successfully", customer)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	customer, err := s.customers.GetCustomer(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Customer Not Found", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Customer Details", customer)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.ListCustomers(r.Context())
	if err != nil {
		writeServiceError(w, "Customer List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Customer List", customers)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Customer Update Failed", err.Error())
		return
	}

	if err := s.customers.UpdateCustomer(r.Context(), req.toModel(id)); err != nil {
		writeServiceError(w, "Customer Update Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Customer Updated Successfully", nil)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.customers.DeleteCustomer(r.Context(), id); err != nil {
		writeServiceError(w, "Customer Delete Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Customer Deleted Successfully", nil)
}

func (r customerRequest) toModel(id int64) *models.Customer {
	persons := r.Persons
	if persons <= 0 {
		persons = 1
	}
	return &models.Customer{
		ID:        id,
		Name:      r.CustomerName,
		Persons:   persons,
		ContactNo: r.ContactNo,
		Email:     r.Email,
		IDCardNo:  r.IDCardNo,
		Address:   r.Address,
	}
}
