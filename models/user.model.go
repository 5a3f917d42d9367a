package models

// User represents an account in the system.
type User struct {
	ID         string `bson:"_id,omitempty" json:"id,omitempty"`
	Email      string `bson:"email" json:"email"`
	Password   string `bson:"password,omitempty" json:"-"`
	FullName   string `bson:"fullname" json:"fullname"`
	Address    string `bson:"address,omitempty" json:"address,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	PostalCode string `bson:"postalcode,omitempty" json:"postalcode,omitempty"`
	IsAdmin    bool   `bson:"is_admin" json:"is_admin"`
}

// RegistrationDraft carries the raw registration form fields. Everything is
// free text until the validation pipeline has run.
type RegistrationDraft struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"fullname"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalcode"`
}
