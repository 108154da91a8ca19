package validators

import "go.mongodb.org/mongo-driver/bson"

var HouseValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"street_address",
			"house_number",
			"city",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"street_address": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"house_number": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 20,
			},

			"city": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"state": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"zip_code": bson.M{
				"bsonType":  "string",
				"maxLength": 20,
			},

			"contact_number": bson.M{
				"bsonType": "string",
				"pattern":  `^(\+[1-9]\d{1,14})?$`,
			},
		},
	},
}
