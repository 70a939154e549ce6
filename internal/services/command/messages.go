package command

// Reply texts.
const (
	MsgRegistered      = "Registered: %s\nCurrent keywords: %s"
	MsgRemoved         = "Removed: %s\nCurrent keywords: %s"
	MsgCurrentKeywords = "Current keywords: %s"
	MsgEcho            = "Received: %s\nYour userId: %s"

	MarkerNoneAdded   = "(none new)"
	MarkerNoneMatched = "(no match)"
	MarkerEmpty       = "(none)"

	MsgFollowGreeting = "Thanks for adding me as a friend!\n" +
		"Register keywords: e.g. + generative AI, self-driving\n" +
		"Remove keywords: e.g. - generative AI\n" +
		"Show your keywords: list / keywords / キーワード"
)

// listSynonyms are the first tokens that ask for the current keyword list.
var listSynonyms = map[string]struct{}{
	"list":     {},
	"keywords": {},
	"キーワード":    {},
}
