package network

// PropertyListUser is one record of the user directory. Every field is
// optional and keyed by its own name.
type PropertyListUser struct {
	Id            *int    `json:"Id,omitempty" yaml:"Id,omitempty"`
	FirstName     *string `json:"FirstName,omitempty" yaml:"FirstName,omitempty"`
	LastName      *string `json:"LastName,omitempty" yaml:"LastName,omitempty"`
	CreatedDate   *string `json:"CreatedDate,omitempty" yaml:"CreatedDate,omitempty"`
	Image         *string `json:"Image,omitempty" yaml:"Image,omitempty"`
	EmailID       *string `json:"EmailID,omitempty" yaml:"EmailID,omitempty"`
	Address       *string `json:"Address,omitempty" yaml:"Address,omitempty"`
	Phone         *string `json:"Phone,omitempty" yaml:"Phone,omitempty"`
	PropertyImage *string `json:"PropertyImage,omitempty" yaml:"PropertyImage,omitempty"`
	Latitude      *string `json:"Latitude,omitempty" yaml:"Latitude,omitempty"`
	Longitude     *string `json:"Longitude,omitempty" yaml:"Longitude,omitempty"`
	MLSID         *string `json:"MLSID,omitempty" yaml:"MLSID,omitempty"`
}

// DisplayName joins the first and last name, skipping missing parts.
func (u PropertyListUser) DisplayName() string {
	first, last := deref(u.FirstName), deref(u.LastName)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// LoginResult is the backend's answer to a login request.
// Response 0 means the backend rejected the request; Msg says why.
type LoginResult struct {
	Response int    `json:"Response"`
	Msg      string `json:"Msg,omitempty"`
	UserID   string `json:"UserID,omitempty"`
	Token    string `json:"Token,omitempty"`
}

// UsersResult is the backend's answer to a user directory request.
// Response 0 means the backend rejected the request; Msg says why.
type UsersResult struct {
	Response     int                `json:"Response"`
	Msg          string             `json:"Msg,omitempty"`
	PropertyList []PropertyListUser `json:"propertylst,omitempty"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
