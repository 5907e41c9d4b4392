package supabase

import "fmt"

type PasswordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// APIError is the auth server's error body. Older and newer GoTrue versions
// use different field names, so all of them are read.
type APIError struct {
	StatusCode       int    `json:"-"`
	Code             string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e *APIError) message() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	}
	return e.ErrorDescription
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase auth %d: %s", e.StatusCode, e.message())
}
