package auth

import "github.com/dmitrijs2005/blogkeeper/internal/common"

// CanMutate reports whether principalID may modify a resource owned by
// ownerID. Empty ids never match.
func CanMutate(principalID, ownerID string) bool {
	return principalID != "" && principalID == ownerID
}

// Authorize returns a forbidden error naming action ("update this post")
// unless principalID owns the resource.
func Authorize(principalID, ownerID, action string) error {
	if CanMutate(principalID, ownerID) {
		return nil
	}
	return common.NewError(common.KindForbidden, "Not authorized to "+action)
}
