package models

// UserProfile is the signed-in user as returned by the booking service.
type UserProfile struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	IsBusiness bool   `json:"is_business"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// RegisterInput holds the registration form. Avatar is optional.
type RegisterInput struct {
	Email      string
	FullName   string
	Password   string
	IsBusiness bool
	Avatar     *Upload
}

// Upload is a file received from the client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
