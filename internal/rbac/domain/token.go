package domain

// Token is an issued access token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int // seconds
}
