package models

// Recipe is a schema-less recipe document. Any JSON object submitted on
// creation is stored verbatim; the store assigns the identifier under IDField.
type Recipe map[string]interface{}

// Well-known recipe fields.
const (
	IDField        = "_id"
	UserEmailField = "userEmail"
	CuisineField   = "cuisine"
	LikeCountField = "likeCount"
	ImageURLField  = "imageURL"
)

// AllCuisines is the cuisine filter value that disables filtering.
const AllCuisines = "All"

// ID returns the string-encoded identifier of the recipe, if any.
func (r Recipe) ID() string {
	id, _ := r[IDField].(string)
	return id
}

// WithoutID returns a shallow copy of the recipe with the identifier removed.
// Identifiers are store-assigned and immutable, so request bodies never carry one.
func (r Recipe) WithoutID() Recipe {
	out := make(Recipe, len(r))
	for k, v := range r {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}

// InsertResult is the acknowledgment returned for a created recipe.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// Message is the body of simple status responses.
type Message struct {
	Message string `json:"message"`
}
