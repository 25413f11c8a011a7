package api

import (
	"net/http"

	"hotelier/internal/models"
)

type roomRequest struct {
	RoomNo     string `json:"room_no"`
	RoomTypeID int64  `json:"room_type_id"`
}

type roomTypeRequest struct {
	RoomType  string  `json:"room_type"`
	Price     float64 `json:"price"`
	MaxPerson int     `json:"max_person"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Room Create Failed", err.Error())
		return
	}
	if req.RoomNo == "" || req.RoomTypeID <= 0 {
		writeError(w, http.StatusBadRequest, "Room Create Failed", "room_no and room_type_id are required")
		return
	}

	room := &models.Room{RoomNo: req.RoomNo, RoomTypeID: req.RoomTypeID}
	if err := s.rooms.CreateRoom(r.Context(), room); err != nil {
		writeServiceError(w, "Room Create Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Room Created Successfully", room)
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	room, err := s.rooms.GetRoom(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Room Not Found", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Room Details", room)
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.rooms.ListRooms(r.Context())
	if err != nil {
		writeServiceError(w, "Room List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Room List", rooms)
}

func (s *Server) handleListAvailableRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.rooms.ListAvailableRooms(r.Context())
	if err != nil {
		writeServiceError(w, "Available Room List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Available Room List", rooms)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Room Update Failed", err.Error())
		return
	}

	room := &models.Room{ID: id, RoomNo: req.RoomNo, RoomTypeID: req.RoomTypeID}
	if err := s.rooms.UpdateRoom(r.Context(), room); err != nil {
		writeServiceError(w, "Room Update Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Room Updated Successfully", nil)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.rooms.DeleteRoom(r.Context(), id); err != nil {
		writeServiceError(w, "Room Delete Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Room Deleted Successfully", nil)
}

func (s *Server) handleCreateRoomType(w http.ResponseWriter, r *http.Request) {
	var req roomTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Room Type Create Failed", err.Error())
		return
	}
	if req.RoomType == "" || req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "Room Type Create Failed", "room_type and a positive price are required")
		return
	}

	rt := &models.RoomType{Name: req.RoomType, Price: req.Price, MaxPerson: req.MaxPerson}
	if rt.MaxPerson <= 0 {
		rt.MaxPerson = 1
	}
	if err := s.rooms.CreateRoomType(r.Context(), rt); err != nil {
		writeServiceError(w, "Room Type Create Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Room Type Created Successfully", rt)
}

func (s *Server) handleListRoomTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.rooms.ListRoomTypes(r.Context())
	if err != nil {
		writeServiceError(w, "Room Type List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Room Type List", types)
}

func (s *Server) handleUpdateRoomType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req roomTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Room Type Update Failed", err.Error())
		return
	}

	rt := &models.RoomType{ID: id, Name: req.RoomType, Price: req.Price, MaxPerson: req.MaxPerson}
	if err := s.rooms.UpdateRoomType(r.Context(), rt); err != nil {
		writeServiceError(w, "Room Type Update Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Room Type Updated Successfully", nil)
}

func (s *Server) handleDeleteRoomType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.rooms.DeleteRoomType(r.Context(), id); err != nil {
		writeServiceError(w, "Room Type Delete Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Room Type Deleted Successfully", nil)
}
