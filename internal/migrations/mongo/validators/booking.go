package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"room_id",
			"room_type",
			"guest_name",
			"guest_email",
			"guest_phone",
			"check_in",
			"check_out",
			"nights",
			"total_price",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  "^CONF-[A-Z0-9]{8}$",
			},

			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"room_type": bson.M{
				"bsonType": "string",
				"enum":     []string{"Single", "Double", "Suite"},
			},

			"guest_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"guest_email": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 320,
			},

			"guest_phone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"check_in": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"check_out": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"nights": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"total_price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"CONFIRMED", "CANCELLED"},
			},

			"supersedes": bson.M{
				"bsonType": "string",
			},

			"superseded_by": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
