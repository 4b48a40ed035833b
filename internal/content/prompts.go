package content

import "fmt"

// MetadataSystemPrompt constrains the model to bare JSON output.
const MetadataSystemPrompt = `You are an assistant that ONLY returns strict JSON. ` +
	`Do not include explanations or markdown fences unless asked.`

// MetadataUserPrompt asks for SEO metadata for a web story title.
func MetadataUserPrompt(title string) string {
	return fmt.Sprintf(`For a web story, produce concise SEO metadata as strict JSON with keys:
meta_description (<= %d chars), meta_keywords (array of 5-12 concise lowercase phrases), `+
		`filter_tags (array of 5-12 short tags). Title: %s
Example format:
{
  "meta_description": "...",
  "meta_keywords": ["...", "..."],
  "filter_tags": ["...", "..."]
}
Return ONLY JSON.`, DescriptionLimit, title)
}
