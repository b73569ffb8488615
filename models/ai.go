package models

// ModelStatus is what the model check endpoint returns to the frontend.
type ModelStatus struct {
	Success bool    `json:"success"`
	Model   *string `json:"model"` // configured model name, null unless available
	Error   *string `json:"error"` // null on success
}

// ModelAvailable reports a model that the inference server knows about.
func ModelAvailable(name string) ModelStatus {
	return ModelStatus{Success: true, Model: &name}
}

// ModelUnavailable reports a failed check with a human-readable reason.
func ModelUnavailable(reason string) ModelStatus {
	return ModelStatus{Success: false, Error: &reason}
}
