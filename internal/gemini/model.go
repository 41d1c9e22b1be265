package gemini

// Model IDs
//
// | Use                 | API Model ID                    |
// |---------------------|---------------------------------|
// | image generation    | gemini-2.5-flash-image          |
// | video generation    | veo-3.1-fast-generate-preview   |
// | prompt suggestion   | gemini-2.5-flash                |
const (
	// ModelImage generates and edits images from text plus reference images.
	ModelImage = "gemini-2.5-flash-image"

	// ModelVideo generates short videos as a long-running operation.
	ModelVideo = "veo-3.1-fast-generate-preview"

	// ModelText writes prompt text from a title and description.
	ModelText = "gemini-2.5-flash"
)
