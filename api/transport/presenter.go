package transport

import "github.com/fastygo/users/domain"

// NewUserResponse renders a user. The id is always its string form whatever
// its stored kind. A nil user renders as nil.
func NewUserResponse(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if u.ID != nil {
		resp.ID = u.ID.String()
	}
	return resp
}

// NewUserList renders users, never returning nil so an empty list encodes as [].
func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *NewUserResponse(&users[i]))
	}
	return out
}
