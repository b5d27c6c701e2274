package validators

import "go.mongodb.org/mongo-driver/bson"

const hourPattern = `^([01][0-9]|2[0-4]):00$`

// Customer counts are stored as text ("4 Players") by older clients and as
// numbers by newer ones, so both are accepted.
var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"sport",
			"date",
			"startTime",
			"endTime",
			"totalAmount",
			"paymentMode",
			"customer",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"sportId": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"sport": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`,
			},

			"startTime": bson.M{
				"bsonType": "string",
				"pattern":  hourPattern,
			},

			"endTime": bson.M{
				"bsonType": "string",
				"pattern":  hourPattern,
			},

			"totalAmount": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"paymentMode": bson.M{
				"bsonType": "string",
			},

			"customer": bson.M{
				"bsonType": "object",
				"required": []string{"name", "phone"},
				"properties": bson.M{
					"name": bson.M{
						"bsonType":  "string",
						"minLength": 1,
						"maxLength": 100,
					},
					"phone": bson.M{
						"bsonType": "string",
					},
					"count": bson.M{
						"bsonType": []string{"string", "int", "long", "double"},
					},
				},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
