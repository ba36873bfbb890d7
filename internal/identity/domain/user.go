package domain

// GuestID is the sentinel owner id used for favorites and orders when no
// user is signed in.
const GuestID = "guest"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
