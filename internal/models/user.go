package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Gender       *string   `json:"gender"`
	Age          *int      `json:"age"`
	HeightCM     *float64  `json:"height_cm"`
	WeightKG     *float64  `json:"weight_kg"`
	Activity     *string   `json:"activity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
