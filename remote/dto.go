package remote

// Wire shapes of the booking service. Field names follow its JSON.

type BookRequest struct {
	SpotID    string `json:"spot_id"`
	TimeFrom  string `json:"time_from"`
	TimeUntil string `json:"time_until"`
}

type RescheduleRequest struct {
	TimeFrom  string `json:"time_from"`
	TimeUntil string `json:"time_until"`
}

// ConflictBody is the error body returned when a booking is rejected because
// of a specific spot. Position is optional; older servers only send the name.
type ConflictBody struct {
	Spot *ConflictSpot `json:"spot"`
}

type ConflictSpot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position *int   `json:"position,omitempty"`
}

type SpotDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  *int   `json:"position,omitempty"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"is_available"`
}

type FullBookingDTO struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Position  int     `json:"position"`
	Status    string  `json:"status"`
	TimeFrom  string  `json:"time_from"`
	TimeUntil string  `json:"time_until"`
	AvatarURL *string `json:"avatar_url"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
}

type ProfileBookingDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	TimeFrom  string `json:"time_from"`
	TimeUntil string `json:"time_until"`
	Status    string `json:"status"`
}

type BookingWithOptionsDTO struct {
	ID        string         `json:"id"`
	Spot      BookingSpotDTO `json:"spot"`
	TimeFrom  string         `json:"time_from"`
	TimeUntil string         `json:"time_until"`
	Status    string         `json:"status"`
	Options   []string       `json:"options"`
}

type BookingCheckDTO struct {
	ID        string         `json:"id"`
	TimeFrom  string         `json:"time_from"`
	TimeUntil string         `json:"time_until"`
	User      BookingUserDTO `json:"user"`
	Spot      BookingSpotDTO `json:"spot"`
	Status    string         `json:"status"`
	Options   []string       `json:"options"`
}

type BookingUserDTO struct {
	ID        string `json:"id"`
	AvatarURL string `json:"avatar_url"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

type BookingSpotDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserDTO struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	IsBusiness bool    `json:"is_business"`
	AvatarURL  *string `json:"avatar_url"`
}

type ChangeUserInfoRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type YandexRequest struct {
	OAuthToken string `json:"oauth_token"`
}

type RegisterRequest struct {
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Password   string  `json:"password"`
	IsBusiness bool    `json:"is_business"`
	AvatarURL  *string `json:"avatar_url"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type DeviceRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type CoworkingSummaryDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
}

type CoworkingDetailDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Capacity    int      `json:"capacity"`
	OpensAt     string   `json:"opens_at"`
	ClosesAt    string   `json:"closes_at"`
	Images      []string `json:"images"`
}
