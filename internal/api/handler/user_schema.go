package handler

// --- Request / Response types ---

type createUserRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	ZipCode string `json:"zipCode" validate:"required,uszip"`
}

// updateUserRequest is the PATCH body. Nil means the field was absent;
// omitnil keeps explicit empty strings subject to the same constraints as
// create. An empty body is a valid patch.
type updateUserRequest struct {
	Name    *string `json:"name"    validate:"omitnil,min=1,max=100"`
	ZipCode *string `json:"zipCode" validate:"omitnil,uszip"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}
