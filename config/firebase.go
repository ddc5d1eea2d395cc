package config

// ServiceAccount holds the fields of a Firebase service account key that are
// checked before the messaging client is built.
type ServiceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// PushEnabled reports whether a Firebase credentials file is configured.
func PushEnabled() bool {
	return AppConfig.FirebaseCredentialsFile != ""
}
