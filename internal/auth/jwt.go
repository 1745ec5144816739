package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified claim set of an identity-provider token. Sub
// is the provider's subject identifier and establishes file ownership.
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"cognito:username"`
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens against the identity provider's
// published keys. Tokens are accepted only when the RS256 signature
// checks out and the token has not expired.
type Verifier struct {
	keySet *KeySet
}

func NewVerifier(keySet *KeySet) *Verifier {
	return &Verifier{keySet: keySet}
}

func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, fmt.Errorf(msgMissingKeyID)
		}

		return v.keySet.Key(kid)
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf(msgTokenParseFailed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf(msgInvalidTokenClaims)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf(msgMissingSubjectClaim)
	}

	return claims, nil
}
