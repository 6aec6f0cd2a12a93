package skills

import "fmt"

// promptTemplate instructs the text-generation service. The resume text comes
// out of PDF extraction jumbled, so the instruction spells out the priority
// order: dedicated skills section, then inference from experience, then soft
// skills as a last resort.
const promptTemplate = `This is parsed raw text from a resume PDF. The content is jumbled and lacks structure. Analyze the text and extract only the skills, prioritizing technical/hard skills from a dedicated skills section if available. If no skills section exists, infer technical skills from other parts of the resume such as summary, experience, projects, or objectives. If no technical skills can be identified anywhere, extract soft skills instead. Respond with valid JSON of the form {"hardSkills":"skill1, skill2, skill3","softSkills":"skill1, skill2, skill3"}, including only the skill names separated by commas, and leave a value empty if no matching skills are found. This is the raw text: %s`

// BuildPrompt renders the extraction instruction for the given resume text.
func BuildPrompt(resumeText string) string {
	return fmt.Sprintf(promptTemplate, resumeText)
}
