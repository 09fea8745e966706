package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// ID identifies a user document. It is either a GeneratedID assigned by the
// store or a CustomID supplied by the client at creation time.
type ID interface {
	String() string
	isID()
}

// GeneratedID is a store-assigned object id.
type GeneratedID primitive.ObjectID

func (id GeneratedID) String() string { return primitive.ObjectID(id).Hex() }

// ObjectID returns the store representation.
func (id GeneratedID) ObjectID() primitive.ObjectID { return primitive.ObjectID(id) }

func (GeneratedID) isID() {}

// CustomID is an opaque client-supplied identifier stored verbatim.
type CustomID string

func (id CustomID) String() string { return string(id) }

func (CustomID) isID() {}

const generatedIDLength = 24

// ResolveID maps a path identifier onto a stored identifier. A 24 character
// hex string is read as a GeneratedID; anything else is a CustomID.
//
// A custom id that happens to be 24 hex characters is therefore never
// reachable by path, even though Create stores it as given.
func ResolveID(raw string) ID {
	if len(raw) == generatedIDLength {
		if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
			return GeneratedID(oid)
		}
	}
	return CustomID(raw)
}
