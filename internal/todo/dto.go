package todo

type CreateTodoInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Pointer fields so an absent key is distinguishable from a zero value;
// absent fields keep their current value.
type UpdateTodoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
