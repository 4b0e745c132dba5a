package forge

import "fmt"

// The five agitation categories, in their fixed output order.
const (
	CategoryExploreLink      = "Explore a New Link"
	CategoryDeconstruct      = "Deconstruct This"
	CategoryCrossPollinate   = "Cross-Pollinate Ideas"
	CategoryChallengeAssume  = "Challenge Assumptions"
	CategoryShiftPerspective = "Shift Your Perspective"
)

// Prompt provenance markers.
const (
	SourceGenerated = "generated"
	SourceTemplate  = "template"
	SourceNotice    = "notice"
)

// NoticeNoConcepts is returned as the only prompt when extraction found
// no usable terms.
const NoticeNoConcepts = "Please provide more descriptive text to extract concepts for prompt generation."

// NoticeNoSecondTerm fills the link-exploration slot when only one
// concept was extracted.
const NoticeNoSecondTerm = "Not enough distinct concepts to explore new links. Consider adding more detail."

// AgitationPrompt is one creativity-prompting question. Category names
// the ideation strategy; Text is markup-free and ready for any
// presentation layer; Source records whether the model answered, the
// deterministic template was used, or the entry is a notice.
type AgitationPrompt struct {
	Category string `json:"category"`
	Text     string `json:"text"`
	Source   string `json:"source"`
}

// unrelatedDomains is the fixed pool for cross-pollination; one entry
// is drawn uniformly at random per pipeline run.
var unrelatedDomains = []string{
	"the intricate dance of subatomic particles",
	"the evolutionary strategies of deep-sea organisms",
	"the composition of classical symphonies",
	"the logic gates within a quantum computer",
	"ancient martial arts philosophy",
	"the principles of surrealist art",
	"the complex rules of a board game",
	"the formation of celestial bodies",
	"the internal mechanisms of a clock",
	"the growth patterns of fungi",
}

// perspectives is the fixed persona pool for perspective shifting.
var perspectives = []string{
	"a time-traveling anthropologist from 3077",
	"a sentient quantum AI managing a planetary ecosystem",
	"a deep-sea vent microbiologist observing a new life form",
	"a minimalist architect designing a space colony",
	"a performance artist interpreting the concept through dance",
	"a disillusioned philosopher from the digital dark ages",
	"a wise elder from a pre-industrial indigenous tribe",
	"a rogue neuroscientist experimenting with dream states",
}

func linkInstruction(mainTerm, secondaryTerm string) (system, user string) {
	system = "You are a conceptual alchemist and an expert in lateral thinking. " +
		"Your task is to forge a single, profound, and counter-intuitive question " +
		"that either reveals an unexpected connection between two concepts or " +
		"challenges a seemingly obvious link. The question should provoke deep, non-linear thought."
	user = fmt.Sprintf(
		"Given concepts: '%s' and '%s'. "+
			"Formulate a question exploring a hidden or paradoxical link between them.\n\n"+
			"Example 1: Concepts 'Internet' and 'Privacy'. "+
			"Question: 'How does the relentless pursuit of digital privacy inadvertently lead to its erosion, creating a surveillance paradox?'\n"+
			"Example 2: Concepts 'Growth' and 'Stagnation'. "+
			"Question: 'In what ways is apparent stagnation a necessary precursor to true, sustainable growth, rather than its antithesis?'",
		mainTerm, secondaryTerm)
	return system, user
}

func linkFallback(mainTerm, secondaryTerm string) string {
	return fmt.Sprintf(
		"Consider an unexpected connection between '%s' and '%s'. How might '%s' lead to '%s' if conventional logic was suspended?",
		mainTerm, secondaryTerm, mainTerm, secondaryTerm)
}

func deconstructInstruction(mainTerm string) (system, user string) {
	system = "You are a conceptual alchemist specializing in radical deconstruction. " +
		"Your task is to formulate a single, incisive question that forces the user to dissect " +
		"the fundamental components, assumptions, or boundaries of a given concept. " +
		"The question should challenge the very definition or existence of the concept itself."
	user = fmt.Sprintf(
		"Deconstruct the concept: '%s'. What are its essential, indivisible parts? "+
			"What happens if a core component is removed or fundamentally altered?\n\n"+
			"Example 1: Concept 'Justice'. "+
			"Question: 'If the outcome of a just system is always subjective, is justice a fixed principle or merely a continuous, unattainable pursuit?'\n"+
			"Example 2: Concept 'Decision'. "+
			"Question: 'If every decision is ultimately influenced by a cascade of prior unconscious biases, can true free will in decision-making ever truly exist?'",
		mainTerm)
	return system, user
}

func deconstructFallback(mainTerm string) string {
	return fmt.Sprintf(
		"Let's deconstruct '%s'. What are its absolute core components? If you removed one essential part, would it still be '%s'? What would it become?",
		mainTerm, mainTerm)
}

func crossPollinateInstruction(mainTerm, domain string) (system, user string) {
	system = fmt.Sprintf(
		"You are a conceptual alchemist specializing in radical ideation through cross-domain pollination. "+
			"Your task is to generate a single, highly creative and thought-provoking question that "+
			"bridges the concept '%s' with a seemingly unrelated domain: '%s'. "+
			"The question should reveal unexpected insights or solutions.",
		mainTerm, domain)
	user = fmt.Sprintf(
		"Connect '%s' with '%s'. What new perspective emerges when applying principles from '%s' to '%s'?\n\n"+
			"Example 1: Concept 'Innovation', Domain 'Fungal Networks'. "+
			"Question: 'If innovation were to mimic the distributed, resilient, and adaptive growth of a fungal network, how would organizations restructure to optimize for pervasive knowledge sharing and emergent solutions?'\n"+
			"Example 2: Concept 'Decision-making', Domain 'Classical Music Composition'. "+
			"Question: 'How might the principles of counterpoint and harmony in classical music composition offer a framework for balancing conflicting priorities in complex decision-making processes?'",
		mainTerm, domain, domain, mainTerm)
	return system, user
}

func crossPollinateFallback(mainTerm, domain string) string {
	return fmt.Sprintf(
		"Imagine '%s' in the context of '%s'. How would a key concept from '%s' help you see '%s' differently?",
		mainTerm, domain, domain, mainTerm)
}

func assumptionsInstruction(mainTerm, originalText string) (system, user string) {
	system = "You are a conceptual alchemist dedicated to uncovering hidden biases and unquestioned truths. " +
		"Your task is to formulate a single, direct, and unsettling question that forces the user to " +
		"identify and confront the fundamental, often implicit, assumptions underlying their input " +
		"or the core concept. The question should propose a radical counter-factual or alternative reality."
	user = fmt.Sprintf(
		"What are the unstated assumptions behind '%s' or the problem '%s'? "+
			"What if the most foundational assumption were completely false?\n\n"+
			"Example 1: Concept 'Education'. "+
			"Question: 'If the primary purpose of education was not knowledge transfer but the cultivation of radical uncertainty, how would learning environments transform?'\n"+
			"Example 2: Concept 'Success'. "+
			"Question: 'What if the very metric by which we define 'success' was inherently designed to perpetuate systemic inequities, making true universal success impossible?'",
		mainTerm, originalText)
	return system, user
}

func assumptionsFallback(mainTerm string) string {
	return fmt.Sprintf(
		"What core assumptions are you making about '%s' or the overall problem? Try to list them out and then consider what would happen if the opposite of one of those assumptions were true.",
		mainTerm)
}

func perspectiveInstruction(originalText, persona string) (system, user string) {
	system = fmt.Sprintf(
		"You are a conceptual alchemist facilitating radical empathy and reframing. "+
			"Your task is to generate a single, imaginative question that forces the user to "+
			"view their concept or problem '%s' through the highly unique "+
			"lens of a specific, unconventional perspective: '%s'. "+
			"The question should reveal unexpected values, priorities, or solutions.",
		originalText, persona)
	user = fmt.Sprintf(
		"How would '%s' be understood, solved, or transformed by %s?\n\n"+
			"Example 1: Problem 'Urban Traffic Congestion', Perspective 'a migratory bird observing from above'. "+
			"Question: 'If urban traffic congestion was viewed through the eyes of a migratory bird, what fundamental, unseen patterns of flow and bottleneck would become apparent, suggesting solutions entirely external to human infrastructure?'\n"+
			"Example 2: Concept 'Data Security', Perspective 'a medieval cryptographer protecting ancient scrolls'. "+
			"Question: 'What ancient principles of physical secrecy and trusted messengers would a medieval cryptographer apply to guard data that no vault can contain?'",
		originalText, persona)
	return system, user
}

func perspectiveFallback(originalText, persona string) string {
	return fmt.Sprintf(
		"How would '%s' (your input) be perceived, approached, or solved by %s?",
		originalText, persona)
}
