package dto

// LoginURLResponse carries the Google consent URL to redirect the user to.
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Domain   string `json:"domain,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// CallbackResponse is returned after a successful Google sign-in.
type CallbackResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// GoogleUserInfo is the shape of the Google userinfo endpoint response.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
