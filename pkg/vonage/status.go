package vonage

// Status code to message tables for the Verify and SMS APIs. Unknown codes
// render as "Unknown status: <code>".

var verifyStatusMessages = map[string]string{
	"0":   "Success",
	"1":   "Throttled",
	"2":   "Missing parameters",
	"3":   "Invalid parameters",
	"4":   "Invalid credentials",
	"5":   "Internal error",
	"6":   "Request not found",
	"7":   "Network error",
	"8":   "Number barred",
	"9":   "Partner account barred",
	"10":  "Partner quota exceeded",
	"11":  "Code expired",
	"12":  "Already verified",
	"13":  "Code invalid",
	"14":  "Verification rejected",
	"15":  "Verification too recent",
	"16":  "Verification not found",
	"17":  "Verification expired",
	"18":  "Verification failed",
	"19":  "Verification pending",
	"20":  "Maximum attempts reached",
	"101": "Invalid request",
}

var smsStatusMessages = map[string]string{
	"0":  "Success",
	"1":  "Throttled",
	"2":  "Missing parameters",
	"3":  "Invalid parameters",
	"4":  "Invalid credentials",
	"5":  "Internal error",
	"6":  "Invalid message",
	"7":  "Number barred",
	"8":  "Partner account barred",
	"9":  "Partner quota violation",
	"10": "Too many existing binds",
	"11": "Account not enabled for HTTP",
	"12": "Message too long",
	"14": "Invalid signature",
	"15": "Invalid sender address",
	"22": "Invalid network code",
	"23": "Invalid callback url",
	"29": "Non-whitelisted destination",
	"32": "Signature and API secret disallowed",
	"33": "Number de-activated",
}

func verifyStatusMessage(code string) string {
	if message, ok := verifyStatusMessages[code]; ok {
		return message
	}
	return "Unknown status: " + code
}

func smsStatusMessage(code string) string {
	if message, ok := smsStatusMessages[code]; ok {
		return message
	}
	return "Unknown status: " + code
}
