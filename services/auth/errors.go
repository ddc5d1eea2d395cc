package auth

import "fmt"

// Registration steps, in order.
const (
	StepUploadAvatar  = "upload-avatar"
	StepCreateAccount = "create-account"
	StepLogin         = "login"
)

// RegistrationError reports the step a registration stopped at. AvatarURL
// names an avatar uploaded by an earlier step that no account references.
type RegistrationError struct {
	Step      string
	AvatarURL string
	Err       error
}

func (e *RegistrationError) Error() string {
	if e.AvatarURL != "" {
		return fmt.Sprintf("registration failed at %s (orphaned avatar %s): %v", e.Step, e.AvatarURL, e.Err)
	}
	return fmt.Sprintf("registration failed at %s: %v", e.Step, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// Orphaned reports whether an uploaded avatar was left behind.
func (e *RegistrationError) Orphaned() bool { return e.AvatarURL != "" }
