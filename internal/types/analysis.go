package types

// AnalysisPrompt is the fixed instruction sent with every fridge photo
const AnalysisPrompt = "List the main ingredients you see in this fridge photo and suggest 3 recipes I could make with them."

// UploadedImage is a validated photo held in memory for one request
type UploadedImage struct {
	Data     []byte
	MIMEType string
	Filename string
	Size     int64
}

// ResultFormat tags which shape a RecipeResult has
type ResultFormat string

const (
	// FormatStructured means the model answered with parseable recipe JSON
	FormatStructured ResultFormat = "structured"
	// FormatFreeform means the raw text is passed through untouched
	FormatFreeform ResultFormat = "freeform"
)

// RecipeResult is the normalized answer of the vision provider.
// Recipes is never empty: a freeform result carries one fallback record.
type RecipeResult struct {
	Format  ResultFormat `json:"format"`
	Raw     string       `json:"raw"`
	Recipes []Recipe     `json:"recipes"`
}

// Structured reports whether the provider returned recipe records
func (r *RecipeResult) Structured() bool {
	return r.Format == FormatStructured
}

// Payload is what the analyze endpoint sends back as "recipes":
// the record list for structured results, the verbatim text otherwise.
func (r *RecipeResult) Payload() interface{} {
	if r.Structured() {
		return r.Recipes
	}
	return r.Raw
}
