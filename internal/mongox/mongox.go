// Package mongox holds helpers shared by the MongoDB repositories.
package mongox

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

// ParseID converts a hex string into an ObjectID, mapping bad input to
// common.ErrMalformedID.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, common.ErrMalformedID
	}
	return oid, nil
}

// ParseIDs converts every id, failing on the first malformed one.
func ParseIDs(ids []string) ([]bson.ObjectID, error) {
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := ParseID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

// IsDuplicate reports whether err is a unique index violation.
func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
