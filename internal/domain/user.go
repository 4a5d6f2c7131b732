package domain

// User is a dashboard operator account kept in the local store.
type User struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Role      string `db:"role"`
	Status    string `db:"status"`
	Hash      string `db:"password_hash"`
	LastLogin string `db:"last_login"`
}

var UserRoles = []string{"Admin", "Manager", "Staff"}

func (u User) SearchFields() []string { return []string{u.Name, u.Email, u.Role} }

func (u User) Initials() string { return Initials(u.Name) }

func (u User) Active() bool { return u.Status == "Active" }
