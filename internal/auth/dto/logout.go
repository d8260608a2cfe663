package dto

type LogoutInput struct {
	Token     string `json:"-"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}
