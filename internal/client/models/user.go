package models

// User is the authenticated principal returned by /collection/user/me.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phoneNumber,omitempty"`
	Verified bool   `json:"phoneVerified,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// UserUpdate is the body of PUT /collection/user/:id. Nil fields are left
// untouched by the server.
type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phoneNumber,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}
