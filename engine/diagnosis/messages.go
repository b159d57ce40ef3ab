package diagnosis

import (
	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/engine/classifier"
)

var unreachableText = map[advisory.Language]string{
	advisory.English: "Cannot reach the diagnosis service. Please check your connection and try again.",
	advisory.Hindi:   "निदान सेवा से संपर्क नहीं हो सका। कृपया अपना कनेक्शन जांचें और फिर से प्रयास करें।",
	advisory.Marathi: "निदान सेवेशी संपर्क होऊ शकला नाही. कृपया आपले कनेक्शन तपासा आणि पुन्हा प्रयत्न करा.",
}

var classifierErrorText = map[advisory.Language]string{
	advisory.English: "The diagnosis service could not analyse this image.",
	advisory.Hindi:   "निदान सेवा इस छवि का विश्लेषण नहीं कर सकी।",
	advisory.Marathi: "निदान सेवा या प्रतिमेचे विश्लेषण करू शकली नाही.",
}

// failureReason renders the user-facing message for a failed classification.
// The classifier's own message is appended verbatim for classifier errors.
func failureReason(o classifier.Outcome, message string, lang advisory.Language) string {
	if o == classifier.Unreachable {
		return localized(unreachableText, lang)
	}
	text := localized(classifierErrorText, lang)
	if message != "" {
		text += " (" + message + ")"
	}
	return text
}

func localized(m map[advisory.Language]string, lang advisory.Language) string {
	if s, ok := m[lang]; ok {
		return s
	}
	return m[advisory.Fallback]
}
