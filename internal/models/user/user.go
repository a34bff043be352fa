package user

type User struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Gender    string  `json:"gender"`
	Age       *int    `json:"age"`
}

type CreateUserRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Gender    string  `json:"gender"`
	Age       *int    `json:"age"`
}

// UpdateUserRequest carries a partial update: nil fields are left
// untouched, non-nil fields overwrite the stored value.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Gender    *string `json:"gender"`
	Age       *int    `json:"age"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthBody struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewAuthBody(accessToken string) AuthBody {
	return AuthBody{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}
}
