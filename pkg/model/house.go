package model

type House struct {
	ID            HouseID `json:"id" bson:"_id" validate:"required,min=1"`
	StreetAddress string  `json:"streetAddress" bson:"street_address" validate:"required,max=200"`
	HouseNumber   string  `json:"houseNumber" bson:"house_number" validate:"required,max=20"`
	City          string  `json:"city" bson:"city" validate:"required,max=100"`
	State         string  `json:"state" bson:"state" validate:"omitempty,max=100"`
	ZipCode       string  `json:"zipCode" bson:"zip_code" validate:"omitempty,max=20"`
	ContactNumber string  `json:"contactNumber" bson:"contact_number" validate:"omitempty,e164"`
}
