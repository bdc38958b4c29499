// Package assistant 实现健康助手的关键词匹配应答引擎。
//
// 知识库是声明式的有序数据表，表中顺序即匹配优先级。
package assistant

// Section 是应答中的一个带标题的要点段落。
type Section struct {
	Title   string   `yaml:"title"`
	Bullets []string `yaml:"bullets"`
}

// Composed 是一条完整的多段落应答：开场白、若干段落、可选的结束语。
type Composed struct {
	Intro    string    `yaml:"intro"`
	Sections []Section `yaml:"sections"`
	Closing  string    `yaml:"closing"`
}

// KnowledgeEntry 描述一种疾病的症状、危险信号、管理方式与饮食建议。
type KnowledgeEntry struct {
	// Key 以小写子串形式在用户输入中匹配。
	Key          string   `yaml:"key"`
	Name         string   `yaml:"name"`
	Symptoms     []string `yaml:"symptoms"`
	WarningSigns []string `yaml:"warning_signs"`
	Management   []string `yaml:"management"`
	Diet         []string `yaml:"diet"`
}

// FeverRule 区分发热亚型：命中主词，或同时命中全部线索词。
type FeverRule struct {
	Name     string   `yaml:"name"`
	Primary  string   `yaml:"primary"`
	Cues     []string `yaml:"cues"`
	Response Composed `yaml:"response"`
}

// TopicRule 为非疾病类话题提供静态应答，任一关键词命中即触发。
type TopicRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Response Composed `yaml:"response"`
}

// KnowledgeBase 是分类器使用的全部规则表。
type KnowledgeBase struct {
	Diseases      []KnowledgeEntry `yaml:"diseases"`
	FeverTriggers []string         `yaml:"fever_triggers"`
	Fevers        []FeverRule      `yaml:"fevers"`
	Topics        []TopicRule      `yaml:"topics"`
	Fallback      string           `yaml:"fallback"`
	Greeting      string           `yaml:"greeting"`
}

const (
	diseaseIntroFormat = "I understand you're asking about %s. Let me provide you with comprehensive information:"
	symptomsTitle      = "Common Symptoms:"
	warningSignsTitle  = "⚠️ Warning Signs (Seek immediate medical care):"
	managementTitle    = "Management Strategies:"
	dietTitle          = "Recommended Diet:"
	diseaseDisclaimer  = "IMPORTANT: This information is for educational purposes only. Please consult a healthcare provider for proper diagnosis and treatment."
)

// DefaultFallback 在没有任何规则命中时返回。
const DefaultFallback = "I'm here to help! To provide better assistance, please let me know:\n\n" +
	"1. What specific symptoms are you experiencing?\n" +
	"2. How long have you had these symptoms?\n" +
	"3. How severe are they?\n\n" +
	"You can ask about:\n" +
	"• Different types of fever (Viral, Dengue, Typhoid, Malaria)\n" +
	"• Common diseases (Diabetes, Hypertension, Asthma)\n" +
	"• Exercise recommendations\n" +
	"• Dietary guidelines\n\n" +
	"I'm here to provide information and guidance, but remember that this is not a substitute for professional medical advice."

// DefaultGreeting 是每段对话中助手的第一条消息。
const DefaultGreeting = "Hello! I'm your health assistant, here to help you with medical information and guidance. To better assist you, please provide:\n\n" +
	"• Your main symptoms\n" +
	"• How long you've had them\n" +
	"• Severity (mild/moderate/severe)\n\n" +
	"You can ask about conditions like:\n" +
	"• Different types of fever\n" +
	"• Common diseases\n" +
	"• Chronic conditions\n" +
	"• Lifestyle diseases\n\n" +
	"Remember: This is not a substitute for professional medical advice. Always consult a healthcare provider for proper diagnosis and treatment."

// Default 返回内置知识库。每次调用都构造新的值，互不共享。
func Default() *KnowledgeBase {
	return &KnowledgeBase{
		Diseases:      defaultDiseases(),
		FeverTriggers: []string{"fever", "temperature"},
		Fevers:        defaultFevers(),
		Topics:        defaultTopics(),
		Fallback:      DefaultFallback,
		Greeting:      DefaultGreeting,
	}
}

// 顺序决定优先级：输入同时包含多个疾病关键词时，排在前面的胜出。
func defaultDiseases() []KnowledgeEntry {
	return []KnowledgeEntry{
		{
			Key:          "diabetes",
			Name:         "Diabetes",
			Symptoms:     []string{"Increased thirst and urination", "Extreme hunger", "Unexplained weight loss", "Fatigue", "Blurred vision", "Slow-healing sores"},
			WarningSigns: []string{"Blood sugar > 240 mg/dL", "Ketones in urine", "Rapid breathing", "Fruity breath odor", "Confusion", "Extreme fatigue"},
			Management:   []string{"Regular blood sugar monitoring", "Insulin or medication as prescribed", "Regular exercise", "Proper foot care", "Regular medical check-ups"},
			Diet:         []string{"Low glycemic index foods", "High-fiber vegetables", "Lean proteins", "Whole grains", "Limited sugary foods and drinks"},
		},
		{
			Key:          "hypertension",
			Name:         "Hypertension (High Blood Pressure)",
			Symptoms:     []string{"Headaches", "Shortness of breath", "Nosebleeds", "Chest pain", "Vision problems", "Dizziness"},
			WarningSigns: []string{"BP > 180/120 mmHg", "Severe headache", "Chest pain", "Vision problems", "Difficulty speaking"},
			Management:   []string{"Regular BP monitoring", "Prescribed medications", "Stress management", "Regular exercise", "Weight management"},
			Diet:         []string{"Low sodium foods", "DASH diet principles", "Potassium-rich foods", "Limited alcohol", "Reduced caffeine"},
		},
		{
			Key:          "asthma",
			Name:         "Asthma",
			Symptoms:     []string{"Wheezing", "Shortness of breath", "Chest tightness", "Persistent coughing", "Difficulty sleeping"},
			WarningSigns: []string{"Severe breathlessness", "Rapid breathing", "Unable to speak in full sentences", "Blue lips or fingers", "Peak flow < 50% of best"},
			Management:   []string{"Proper inhaler technique", "Avoiding triggers", "Following action plan", "Regular check-ups", "Keep rescue inhaler handy"},
			Diet:         []string{"Anti-inflammatory foods", "Vitamin D rich foods", "Omega-3 fatty acids", "Fresh fruits and vegetables"},
		},
	}
}

func defaultFevers() []FeverRule {
	return []FeverRule{
		{
			Name:    "dengue",
			Primary: "dengue",
			Cues:    []string{"joint", "rash"},
			Response: Composed{
				Intro: "I notice you're describing symptoms that could be consistent with Dengue Fever. Here's what you should know:",
				Sections: []Section{
					{Title: "Typical Symptoms:", Bullets: []string{"High fever (40°C/104°F)", "Severe headache", "Joint and muscle pain", "Characteristic rash", "Eye pain"}},
					{Title: "⚠️ Warning Signs (Require Immediate Medical Care):", Bullets: []string{"Severe abdominal pain", "Persistent vomiting", "Bleeding gums or nose", "Extreme fatigue", "Rapid breathing"}},
					{Title: "Home Management:", Bullets: []string{"Rest and hydration", "Acetaminophen for fever (avoid aspirin)", "Monitor temperature", "Use mosquito protection"}},
				},
				Closing: "IMPORTANT: Please seek immediate medical attention as Dengue can be serious.",
			},
		},
		{
			Name:    "typhoid",
			Primary: "typhoid",
			Cues:    []string{"stomach", "headache"},
			Response: Composed{
				Intro: "Based on your symptoms, I should inform you about Typhoid Fever:",
				Sections: []Section{
					{Title: "Key Symptoms:", Bullets: []string{"Gradually increasing fever", "Severe headache", "Stomach pain", "Loss of appetite", "Weakness"}},
					{Title: "⚠️ Serious Signs:", Bullets: []string{"Very high fever (103°F-104°F)", "Severe abdominal pain", "Mental confusion", "Intestinal bleeding"}},
					{Title: "Required Actions:", Bullets: []string{"Seek medical attention immediately", "Complete prescribed antibiotics", "Stay hydrated", "Rest completely"}},
					{Title: "Prevention:", Bullets: []string{"Safe drinking water", "Proper hand hygiene", "Fully cooked foods", "Avoid raw vegetables"}},
				},
				Closing: "CRITICAL: Typhoid requires proper medical diagnosis and treatment.",
			},
		},
		{
			Name:    "malaria",
			Primary: "malaria",
			Cues:    []string{"chills", "sweat"},
			Response: Composed{
				Intro: "Your symptoms suggest possible Malaria. Here's important information:",
				Sections: []Section{
					{Title: "Classic Symptoms:", Bullets: []string{"Cyclical fever and chills", "Profuse sweating", "Fatigue and weakness", "Headache", "Muscle aches"}},
					{Title: "⚠️ Emergency Signs:", Bullets: []string{"Confusion or seizures", "Difficulty breathing", "Severe weakness", "Jaundice", "Dark or reduced urine"}},
					{Title: "Required Actions:", Bullets: []string{"Seek immediate medical care", "Complete prescribed medication", "Rest completely", "Stay hydrated"}},
					{Title: "Prevention:", Bullets: []string{"Use mosquito nets", "Apply insect repellent", "Wear protective clothing", "Take prophylactic medication if prescribed"}},
				},
				Closing: "URGENT: Malaria requires immediate medical attention for proper diagnosis and treatment.",
			},
		},
		{
			Name:    "viral",
			Primary: "viral",
			Cues:    []string{"cold", "body ache"},
			Response: Composed{
				Intro: "It sounds like you might have a Viral Fever. Let me provide some guidance:",
				Sections: []Section{
					{Title: "Common Symptoms:", Bullets: []string{"Fever (100°F-102°F)", "Body aches", "Fatigue", "Headache", "Mild cough or sore throat"}},
					{Title: "Home Management:", Bullets: []string{"Rest adequately", "Stay hydrated", "Take acetaminophen for fever", "Warm compress for body aches", "Light, nutritious diet"}},
					{Title: "When to See a Doctor:", Bullets: []string{"Fever above 103°F", "Symptoms lasting > 5 days", "Severe throat pain", "Difficulty breathing"}},
					{Title: "Prevention:", Bullets: []string{"Regular hand washing", "Good sleep habits", "Balanced nutrition", "Avoid close contact with sick people"}},
				},
			},
		},
	}
}

func defaultTopics() []TopicRule {
	return []TopicRule{
		{
			Name:     "exercise",
			Keywords: []string{"exercise", "activity"},
			Response: Composed{
				Intro: "I'd be happy to provide exercise recommendations for better health:",
				Sections: []Section{
					{Title: "Recommended Activities:", Bullets: []string{"Walking (30 mins daily)", "Swimming (2-3 times/week)", "Yoga or gentle stretching", "Cycling", "Light resistance training"}},
					{Title: "Important Guidelines:", Bullets: []string{"Start gradually", "Listen to your body", "Stay well hydrated", "Proper warm-up/cool-down", "Regular rest days"}},
					{Title: "⚠️ Stop exercising if you experience:", Bullets: []string{"Chest pain or pressure", "Severe shortness of breath", "Dizziness or lightheadedness", "Unusual fatigue"}},
				},
				Closing: "Remember: Please consult your healthcare provider before starting any new exercise program.",
			},
		},
		{
			Name:     "nutrition",
			Keywords: []string{"diet", "nutrition", "food"},
			Response: Composed{
				Intro: "I'll help you understand healthy dietary guidelines:",
				Sections: []Section{
					{Title: "Essential Components:", Bullets: []string{"Lean proteins (fish, poultry, legumes)", "Whole grains (quinoa, brown rice, oats)", "Fresh fruits and vegetables", "Healthy fats (avocado, nuts, olive oil)"}},
					{Title: "Immune-Boosting Foods:", Bullets: []string{"Citrus fruits (vitamin C)", "Leafy greens (antioxidants)", "Yogurt (probiotics)", "Nuts and seeds (zinc, vitamin E)", "Berries (antioxidants)"}},
					{Title: "Hydration Guidelines:", Bullets: []string{"8-10 glasses of water daily", "Herbal teas", "Fresh fruit juices", "Coconut water"}},
					{Title: "Foods to Limit:", Bullets: []string{"Processed foods", "Added sugars", "Excessive salt", "Saturated fats", "Artificial additives"}},
				},
			},
		},
	}
}
