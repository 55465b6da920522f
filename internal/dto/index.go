package dto

// IndexResponse is the welcome payload served at /
type IndexResponse struct {
	Message            string             `json:"message"`
	AvailableEndpoints AvailableEndpoints `json:"available_endpoints"`
	Authentication     string             `json:"authentication"`
	Version            string             `json:"version"`
}

// AvailableEndpoints groups the index listing by area
type AvailableEndpoints struct {
	Documentation  map[string]string   `json:"documentation"`
	UserManagement map[string]Endpoint `json:"user_management"`
	TodoOperations map[string]Endpoint `json:"todo_operations"`
}

// Endpoint describes one route in the index listing
type Endpoint struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}
