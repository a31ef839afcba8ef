package models

// Course is a catalog entry owned by exactly one user.
// EstimatedTime and MaterialsNeeded are optional and serialize as null
// when absent.
type Course struct {
	ID              int         `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	EstimatedTime   *string     `json:"estimatedTime"`
	MaterialsNeeded *string     `json:"materialsNeeded"`
	UserID          int         `json:"-"`
	User            *PublicUser `json:"user,omitempty"`
}

// CourseInput is the request body for course create and update. Every
// field is a pointer so an absent key is distinguishable from an explicit
// value: absent title/description reach the store as NULL and trip its
// NOT NULL constraints. Ownership is never taken from the body; the
// handler forces the authenticated user.
type CourseInput struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}
