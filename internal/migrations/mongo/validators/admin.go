package validators

import "go.mongodb.org/mongo-driver/bson"

var AdminValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"email", "passwordHash"},
		"properties": bson.M{
			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},
			"passwordHash": bson.M{
				"bsonType":  "string",
				"minLength": 59,
			},
			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "owner", "expiresAt"},
		"properties": bson.M{
			"_id":       bson.M{"bsonType": "string"},
			"owner":     bson.M{"bsonType": "string"},
			"expiresAt": bson.M{"bsonType": "date"},
		},
	},
}
