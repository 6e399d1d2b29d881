package transcript

import "strings"

var approvalPhrases = []string{
	"would you like",
	"should i proceed",
	"shall i continue",
	"do you want",
	"is this okay",
	"confirm",
	"approve",
	"permission to",
	"may i",
	"can i proceed",
	"before i continue",
	"do you approve",
	"is it okay to",
	"should i go ahead",
	"ready to proceed",
	"waiting for your",
	"need your approval",
	"requires your approval",
	"please confirm",
	"yes or no",
	"y/n",
	"(y/n)",
	"[y/n]",
	"proceed with",
	"continue with",
	"allow me to",
	"i'll need to",
	"i need to",
	"about to",
	"going to make",
	"will make the following",
	"before making",
	"requires permission",
	"awaiting confirmation",
	"please respond",
	"your response",
	"let me know if",
	"if you'd like me to",
}

// DetectApprovalRequest reports whether text reads like the assistant is waiting
// for the user to confirm something.
func DetectApprovalRequest(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	lower := strings.ToLower(text)
	for _, phrase := range approvalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	return false
}
