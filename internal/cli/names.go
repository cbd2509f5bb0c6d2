package cli

import (
	"regexp"
	"strings"
)

// nameRule rewrites a model slug into a display name. Rules are evaluated
// in order, first match wins; a slug matching nothing falls through to a
// generic cleanup.
type nameRule struct {
	pattern   *regexp.Regexp
	template  string
	titlecase bool
}

var nameRules = []nameRule{
	{regexp.MustCompile(`^anthropic/claude-(\d+(?:\.\d+)?)-(opus|sonnet|haiku)`), "Claude $1 $2", true},
	{regexp.MustCompile(`^anthropic/claude-(opus|sonnet|haiku)-(\d+(?:\.\d+)?)`), "Claude $1 $2", true},
	{regexp.MustCompile(`^openai/gpt-(\S+)`), "GPT-$1", false},
	{regexp.MustCompile(`^openai/o(\d\S*)`), "o$1", false},
	{regexp.MustCompile(`^google/gemini-(\S+)`), "Gemini $1", false},
	{regexp.MustCompile(`^meta-llama/llama-(\S+)`), "Llama $1", false},
	{regexp.MustCompile(`^mistralai/mistral-(\S+)`), "Mistral $1", false},
	{regexp.MustCompile(`^deepseek/deepseek-(\S+)`), "DeepSeek $1", true},
	{regexp.MustCompile(`^x-ai/grok-(\S+)`), "Grok $1", false},
}

// variantSuffixes are OpenRouter routing variants stripped before matching.
var variantSuffixes = []string{":free", ":beta", ":extended", ":nitro", ":floor"}

// PrettyModelName rewrites an OpenRouter model slug for display.
// e.g., "anthropic/claude-3.5-sonnet" -> "Claude 3.5 Sonnet",
// "some-lab/novel-model" -> "novel-model". Unknown slugs keep their
// model segment untouched apart from dropping the provider prefix.
func PrettyModelName(slug string) string {
	s := strings.TrimSpace(slug)
	if s == "" {
		return ""
	}

	for _, suffix := range variantSuffixes {
		s = strings.TrimSuffix(s, suffix)
	}

	for _, rule := range nameRules {
		if rule.pattern.MatchString(s) {
			out := rule.pattern.ReplaceAllString(s, rule.template)
			if rule.titlecase {
				out = titleWords(out)
			}
			return out
		}
	}

	// Fallback: drop the provider prefix, keep the rest as-is.
	if i := strings.IndexByte(s, '/'); i >= 0 && i+1 < len(s) {
		return s[i+1:]
	}
	return s
}

// titleWords uppercases the first letter of each space-separated word,
// leaving words that already contain uppercase (GPT-4o, o1) alone.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == strings.ToLower(w) && w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
