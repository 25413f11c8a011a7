package models

type Room struct {
	ID         int64  `json:"room_id"`
	RoomNo     string `json:"room_no"`
	RoomTypeID int64  `json:"room_type_id"`
	Occupied   bool   `json:"status"`
	CheckedIn  bool   `json:"check_in_status"`
	CheckedOut bool   `json:"check_out_status"`
	Deleted    bool   `json:"-"`
}

// RoomDetail is a room row joined with its type.
type RoomDetail struct {
	Room
	RoomType  string  `json:"room_type"`
	Price     float64 `json:"price"`
	MaxPerson int     `json:"max_person"`
}

type RoomType struct {
	ID        int64   `json:"room_type_id"`
	Name      string  `json:"room_type"`
	Price     float64 `json:"price"`
	MaxPerson int     `json:"max_person"`
}
