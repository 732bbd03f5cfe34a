package entity

const RoleAdmin = "admin"

// OperatorLoginData is taken from a verified access token.
type OperatorLoginData struct {
	ID   string
	Role string
}
