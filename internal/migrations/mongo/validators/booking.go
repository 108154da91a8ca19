package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"house_id",
			"laundry_room_id",
			"booking_start_time_utc",
			"booking_end_time_utc",
			"booking_status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"house_id": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"laundry_room_id": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"booking_start_time_utc": bson.M{
				"bsonType": "date",
			},

			"booking_end_time_utc": bson.M{
				"bsonType": "date",
			},

			"booking_status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"ACTIVE",
					"CANCELLED",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
