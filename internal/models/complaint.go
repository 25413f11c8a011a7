package models

import "time"

type Complaint struct {
	ID          int64     `json:"complaint_id"`
	CustomerID  int64     `json:"customer_id"`
	Description string    `json:"description"`
	Resolved    bool      `json:"resolve_status"`
	CreatedAt   time.Time `json:"created_at"`
}
