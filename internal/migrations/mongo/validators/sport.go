package validators

import "go.mongodb.org/mongo-driver/bson"

var SportValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"nameKey",
			"price",
			"isActive",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"nameKey": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"price": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  100000,
			},

			"isActive": bson.M{
				"bsonType": "bool",
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
