package api

import "errors"

// friendlyMessages maps provider error codes to the strings shown to users.
var friendlyMessages = map[string]string{
	"auth/email-already-in-use": "This email is already registered. Try logging in instead.",
	"auth/weak-password":        "Password is too weak. Please use at least 6 characters.",
	"auth/invalid-email":        "Please enter a valid email address.",
	"auth/user-not-found":       "No account found with this email. Try creating an account.",
	"auth/wrong-password":       "Incorrect password. Please try again.",
}

// FriendlyMessage translates known provider error codes to user-facing text.
// Unknown errors pass through unchanged.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg, ok := friendlyMessages[apiErr.Code]; ok {
			return msg
		}
	}
	return err.Error()
}
