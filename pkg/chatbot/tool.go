package chatbot

import (
	"github.com/go-go-golems/cicerone/pkg/inference/tools"
	"github.com/go-go-golems/cicerone/pkg/places"
)

// SearchPlacesInput is the argument schema advertised for search_places.
type SearchPlacesInput struct {
	Query string `json:"query" jsonschema:"required,description=The place name and kind to search for (e.g. 'Gangnam station Chinese restaurant' or 'Hongdae cafe')"`
}

// SearchPlacesDefinition declares the search_places tool.
func SearchPlacesDefinition() (*tools.Definition, error) {
	return tools.NewDefinition(
		ToolNameSearchPlaces,
		"Searches for nearby places (restaurants, cafes, ...). Takes a search query combining a location name and a place category or food kind.",
		SearchPlacesInput{},
	)
}

// placesPayload converts search matches into the tool-result wire shape the
// model sees, mirroring the upstream search API field names.
func placesPayload(found []places.Place) []map[string]any {
	out := make([]map[string]any, 0, len(found))
	for _, p := range found {
		out = append(out, map[string]any{
			"place_name":    p.Name,
			"address_name":  p.Address,
			"category_name": p.Category,
			"phone":         p.Phone,
			"place_url":     p.DetailURL,
		})
	}
	return out
}
