package chat

import (
	"strings"

	"github.com/krushit/krushit/engine/advisory"
)

const fallbackPrefix = "[Smart Assistant] "

type topic struct {
	name     string
	keywords []string
}

// topics are checked in order; the first match wins.
var topics = []topic{
	{"water", []string{"पानी", "पाणी", "water", "irrigation", "सिंचाई", "सिंचन", "dry", "wet"}},
	{"pest", []string{"कीड़े", "कीटक", "pest", "insect", "worm", "कीड", "अळी"}},
	{"disease", []string{"रोग", "आजार", "disease", "sick", "yellow", "spots", "पिवळे", "डाग"}},
	{"crop", []string{"crop", "plant", "sugarcane", "wheat", "rice", "पिक", "फसल"}},
	{"fertilizer", []string{"khad", "fertilizer", "urea", "npk", "खत", "उर्वरक"}},
}

var knowledge = map[string]map[advisory.Language]string{
	"water": {
		advisory.English: "During germination, keep soil moist but not waterlogged. Water every 2-3 days.",
		advisory.Hindi:   "अंकुरण के दौरान मिट्टी को नम रखें लेकिन जलभराव न होने दें। हर 2-3 दिन में पानी दें।",
		advisory.Marathi: "उगवणीच्या काळात माती ओलसर ठेवा पण पाणी साचू देऊ नका. दर 2-3 दिवसांनी पाणी द्या.",
	},
	"pest": {
		advisory.English: "Check underside of leaves for insects. Neem oil spray is a safe organic solution.",
		advisory.Hindi:   "पत्तियों के निचले हिस्से में कीड़े देखें। नीम तेल का छिड़काव एक सुरक्षित जैविक उपाय है।",
		advisory.Marathi: "पानांच्या खालच्या बाजूला कीड तपासा. कडुलिंब तेलाची फवारणी हा सुरक्षित सेंद्रिय उपाय आहे.",
	},
	"disease": {
		advisory.English: "Yellowing often indicates nutrient deficiency or overwatering. Check roots for rot.",
		advisory.Hindi:   "पत्तियों का पीला पड़ना अक्सर पोषक तत्वों की कमी या अधिक पानी का संकेत है। जड़ों में सड़न जांचें।",
		advisory.Marathi: "पाने पिवळी पडणे हे बहुधा अन्नद्रव्यांची कमतरता किंवा जास्त पाण्याचे लक्षण आहे. मुळे कुजली आहेत का ते तपासा.",
	},
	"crop": {
		advisory.English: "Ensure your crop gets enough sunlight and protection from direct wind.",
		advisory.Hindi:   "सुनिश्चित करें कि आपकी फसल को पर्याप्त धूप और तेज हवा से सुरक्षा मिले।",
		advisory.Marathi: "आपल्या पिकाला पुरेसा सूर्यप्रकाश आणि जोरदार वाऱ्यापासून संरक्षण मिळेल याची खात्री करा.",
	},
	"fertilizer": {
		advisory.English: "Base fertilizer on a recent soil test. Split nitrogen into 2-3 doses and avoid excess urea.",
		advisory.Hindi:   "हाल की मिट्टी जांच के आधार पर खाद दें। नाइट्रोजन को 2-3 भागों में दें और अधिक यूरिया से बचें।",
		advisory.Marathi: "अलीकडील माती परीक्षणावर आधारित खत द्या. नत्र 2-3 हप्त्यांत द्या आणि जास्त युरिया टाळा.",
	},
	"general": {
		advisory.English: "I'm here to help. Could you tell me if you noticed spots on leaves or soil color changes?",
		advisory.Hindi:   "मैं मदद के लिए यहाँ हूँ। क्या आपने पत्तियों पर धब्बे या मिट्टी के रंग में बदलाव देखा है?",
		advisory.Marathi: "मी मदतीसाठी येथे आहे. पानांवर डाग किंवा मातीच्या रंगात बदल दिसला का ते सांगाल का?",
	},
}

// classify returns the first topic whose keyword appears in message.
func classify(message string) string {
	lower := strings.ToLower(message)
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return t.name
			}
		}
	}
	return "general"
}

func fallback(message string, lang advisory.Language) string {
	answers := knowledge[classify(message)]
	if s, ok := answers[lang]; ok {
		return s
	}
	return answers[advisory.Fallback]
}
