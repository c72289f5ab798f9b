package dto

type SeededSpace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SeededUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Created  bool   `json:"created"`
}

// SeedResponse lists what the catalog seed produced. Entries that already
// existed are reported with the stored id and are not touched.
type SeedResponse struct {
	Spaces        []SeededSpace `json:"spaces"`
	SpacesCreated int           `json:"spaces_created"`
	Users         []SeededUser  `json:"users"`
}
