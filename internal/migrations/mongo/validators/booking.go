package validators

import "go.mongodb.org/mongo-driver/bson"

// BookingValidator is enforced by the server on every insert, so a document
// missing a required field never reaches the collection even if a client
// bypasses the HTTP validation.
var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"personName",
			"churchName",
			"state",
			"date",
			"mobile",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"personName": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"churchName": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"state": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"mobile": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 32,
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
