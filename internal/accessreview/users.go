package accessreview

// User is compared by value: two users are equal iff name and password match.
type User struct {
	Name     string
	Password string
}

type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (c *Credentials) User() User {
	return User{Name: c.Name, Password: c.Password}
}
