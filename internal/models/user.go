package models

// User represents the signed-in account holder
type User struct {
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
}
