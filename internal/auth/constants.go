package auth

const (
	ContextKeyUserID = "user_id"
	ContextKeyClaims = "claims"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization  = "Access denied. No token provided."
	msgInvalidOrExpiredToken = "Invalid token"
	msgUserNotAuthenticated  = "user not authenticated"
	msgInvalidUserIDCtx      = "invalid user ID in context"

	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
	msgMissingSubjectClaim     = "token has no subject claim"
	msgMissingKeyID            = "token has no key ID header"
	msgUnknownKeyID            = "no published key matches key ID %q"
)
