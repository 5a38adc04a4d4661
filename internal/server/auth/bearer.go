package auth

import (
	"strings"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

// ParseBearer extracts the token from an Authorization header value of the
// form "Bearer <token>". The token is the text between the single space after
// the scheme and the next space; anything after it is ignored.
func ParseBearer(header string) (string, error) {
	rest, ok := strings.CutPrefix(header, common.BearerScheme)
	if !ok {
		return "", common.ErrMissingToken
	}
	token, _, _ := strings.Cut(rest, " ")
	if token == "" {
		return "", common.ErrMissingToken
	}
	return token, nil
}
