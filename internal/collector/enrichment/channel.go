package enrichment

import "strings"

// Marketing channels, coarsest first.
const (
	ChannelPaid     = "Paid"
	ChannelEmail    = "Email"
	ChannelSearch   = "Search"
	ChannelSocial   = "Social"
	ChannelAI       = "AI"
	ChannelReferral = "Referral"
)

// ChannelClassifier groups campaign sources into marketing channels.
type ChannelClassifier struct {
	paidMediums  []string
	emailMediums []string
	search       []string
	social       []string
	ai           []string
}

func NewChannelClassifier() *ChannelClassifier {
	return &ChannelClassifier{
		paidMediums:  []string{"cpc", "ppc", "paid", "paidsearch", "paid_social", "display", "cpm"},
		emailMediums: []string{"email", "e-mail", "newsletter"},
		search: []string{
			"google", "bing", "yahoo", "duckduckgo", "baidu", "yandex", "ecosia",
		},
		social: []string{
			"facebook", "fb", "twitter", "x.com", "instagram", "linkedin", "pinterest",
			"reddit", "tiktok", "youtube", "threads", "mastodon",
		},
		ai: []string{
			"chatgpt", "openai", "claude", "gemini", "perplexity", "copilot",
		},
	}
}

// Classify decides by medium first, then by source. A medium of "organic"
// with a search source is Search; anything unmatched is Referral.
func (c *ChannelClassifier) Classify(source, medium string) string {
	source = normalize(source)
	medium = normalize(medium)

	switch {
	case contains(c.paidMediums, medium):
		return ChannelPaid
	case contains(c.emailMediums, medium), contains(c.emailMediums, source):
		return ChannelEmail
	case matches(c.ai, source):
		return ChannelAI
	case matches(c.search, source):
		return ChannelSearch
	case matches(c.social, source), medium == "social":
		return ChannelSocial
	}
	return ChannelReferral
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimPrefix(s, "www.")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// matches reports whether s names one of list, as a bare name or a hostname.
func matches(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if s == v || strings.HasPrefix(s, v+".") || strings.Contains(s, "."+v+".") {
			return true
		}
	}
	return false
}
