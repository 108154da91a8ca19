package validators

import "go.mongodb.org/mongo-driver/bson"

var LaundryRoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"start_hour",
			"end_hour",
			"min_slot_length",
			"max_slot_length",
			"booking_window",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"start_hour": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  23,
			},

			"end_hour": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  24,
			},

			"min_slot_length": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"max_slot_length": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"booking_window": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"time_zone": bson.M{
				"bsonType": "string",
			},
		},
	},
}
