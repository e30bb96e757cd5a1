package model

// TokenManager issues and validates signed bearer tokens.
type TokenManager interface {
	GenerateToken(identity Identity) (string, error)
	ParseToken(token string) (Identity, error)
}
