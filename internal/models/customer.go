package models

import "time"

type Customer struct {
	ID        int64     `json:"customer_id"`
	Name      string    `json:"customer_name"`
	Persons   int       `json:"number_of_persons"`
	ContactNo string    `json:"contact_no"`
	Email     string    `json:"email"`
	IDCardNo  string    `json:"id_card_no"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
