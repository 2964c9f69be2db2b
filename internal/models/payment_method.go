package models

// Provider is a mobile money provider
type Provider string

const (
	ProviderMTN        Provider = "MTN"
	ProviderVodafone   Provider = "Vodafone"
	ProviderAirtelTigo Provider = "AirtelTigo"
)

// Valid reports whether p is a supported provider
func (p Provider) Valid() bool {
	switch p {
	case ProviderMTN, ProviderVodafone, ProviderAirtelTigo:
		return true
	}
	return false
}

// PaymentMethod is a mobile money wallet linked to the account
type PaymentMethod struct {
	ID          string   `bson:"id" json:"id"`
	Provider    Provider `bson:"provider" json:"provider"`
	PhoneNumber string   `bson:"phoneNumber" json:"phoneNumber"`
	IsPrimary   bool     `bson:"isPrimary" json:"isPrimary"`
}
