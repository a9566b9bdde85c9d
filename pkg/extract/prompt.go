package extract

import "strings"

const exampleStructure = `Example structure similar to:
- Main Topic: "Agentic AI Development Methodologies"
- Main categories:
  - "Architectural Approaches" → connects to "Multi-Agent Systems", "Hierarchical Reinforcement Learning", "Goal-Directed Model Architectures"
  - "Learning Paradigms" → connects to "Supervised Learning", "Unsupervised Learning", "Reinforcement Learning"
  - "Training and Evaluation Techniques" → connects to "Situation-Based Testing", "Curriculum Learning", "Multi-Task Learning"
  - "Tools and Frameworks" → connects to "OpenAI Gym", "Unity ML-Agents", "TensorFlow Agents", "PyMARL", "Rasa"

Use simple, direct relationships without verbose descriptions. Focus on clear hierarchy and organization.`

type promptShape struct {
	intro      string
	nodes      string
	categories string
	children   string
}

var (
	standardShape = promptShape{
		intro:      "Create a structured mind map about the given topic that matches the following example structure.",
		nodes:      "15-25",
		categories: "3-5",
		children:   "2-5",
	}
	researchShape = promptShape{
		intro:      "Create a comprehensive structured mind map based on your research that matches the following example structure.",
		nodes:      "20-30",
		categories: "4-6",
		children:   "3-6",
	}
)

// BuildPrompt returns the instruction sent to a backend for text.
// Research mode asks for a larger map.
func BuildPrompt(text string, research bool) string {
	s := standardShape
	if research {
		s = researchShape
	}

	var b strings.Builder
	b.WriteString(s.intro)
	b.WriteString("\n\n")
	b.WriteString(exampleStructure)
	b.WriteString("\n\nReturn ONLY a valid JSON object with these fields:\n")
	b.WriteString("- 'nodes': A list of concept names (" + s.nodes + " total nodes)\n")
	b.WriteString("- 'edges': A list of [source, target, \"\"] triples (use empty string for the relationship)\n")
	b.WriteString("\nImportant requirements:\n")
	b.WriteString("1. Create a hierarchical structure with ONE central topic and " + s.categories + " main categories\n")
	b.WriteString("2. Each main category should have " + s.children + " subcategories/examples\n")
	b.WriteString("3. Ensure connections are simple with NO verbose text descriptions\n")
	b.WriteString("4. Focus on organization similar to the example structure\n")
	b.WriteString("5. Produce a balanced mind map with clean concepts")
	b.WriteString("\n\nText: ")
	b.WriteString(text)
	return b.String()
}
